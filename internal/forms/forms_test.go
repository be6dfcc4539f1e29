package forms

import (
	"errors"
	"net/url"
	"reflect"
	"testing"
	"time"

	"venuebook/shared/go/models"
)

func validVenueValues() url.Values {
	return url.Values{
		"name":                {" The Musical Hop "},
		"city":                {"San Francisco"},
		"state":               {"CA"},
		"address":             {"1015 Folsom Street"},
		"phone":               {"123-123-1234"},
		"genres":              {"Jazz", "Reggae", "Jazz", "Folk"},
		"website":             {"https://www.themusicalhop.com"},
		"facebook_link":       {"https://www.facebook.com/TheMusicalHop"},
		"seeking_talent":      {"y"},
		"seeking_description": {"We are on the lookout for a local artist."},
	}
}

func TestParseVenueValid(t *testing.T) {
	venue, err := ParseVenue(validVenueValues())
	if err != nil {
		t.Fatalf("ParseVenue error: %v", err)
	}

	if venue.Name != "The Musical Hop" {
		t.Fatalf("expected trimmed name, got %q", venue.Name)
	}
	if !venue.SeekingTalent {
		t.Fatalf("expected seeking_talent to be set")
	}
	if !reflect.DeepEqual(venue.Genres, models.Genres{"Jazz", "Reggae", "Folk"}) {
		t.Fatalf("unexpected genres: %#v", venue.Genres)
	}
}

func TestParseVenueReportsEachInvalidField(t *testing.T) {
	values := validVenueValues()
	values.Del("city")
	values.Set("address", "   ")
	values.Set("website", "ftp://example.com")
	values["genres"] = []string{"Jazz", "Polka"}

	_, err := ParseVenue(values)

	var problems FieldErrors
	if !errors.As(err, &problems) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	for _, name := range []string{"city", "address", "website", "genres"} {
		if _, ok := problems[name]; !ok {
			t.Fatalf("expected an error for %q, got %#v", name, problems)
		}
	}
	if _, ok := problems["name"]; ok {
		t.Fatalf("name is valid but was reported: %#v", problems)
	}
}

func TestParseArtistRequiresNameCityState(t *testing.T) {
	_, err := ParseArtist(url.Values{"phone": {"326-123-5000"}})

	var problems FieldErrors
	if !errors.As(err, &problems) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	want := FieldErrors{
		"name":  "This field is required.",
		"city":  "This field is required.",
		"state": "This field is required.",
	}
	if !reflect.DeepEqual(problems, want) {
		t.Fatalf("expected %#v, got %#v", want, problems)
	}
}

func TestParseArtistSeekingVenue(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   bool
	}{
		{name: "absent", want: false},
		{name: "checked", values: []string{"y"}, want: true},
		{name: "true", values: []string{"True"}, want: true},
		{name: "empty", values: []string{""}, want: false},
		{name: "false", values: []string{"false"}, want: false},
		{name: "off", values: []string{"off"}, want: false},
		{name: "zero", values: []string{"0"}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			values := url.Values{"name": {"Matt Quevedo"}, "city": {"New York"}, "state": {"NY"}}
			if tc.values != nil {
				values["seeking_venue"] = tc.values
			}

			artist, err := ParseArtist(values)
			if err != nil {
				t.Fatalf("ParseArtist error: %v", err)
			}
			if artist.SeekingVenue != tc.want {
				t.Fatalf("expected seeking_venue %v, got %v", tc.want, artist.SeekingVenue)
			}
		})
	}
}

func TestParseShowAcceptsLayouts(t *testing.T) {
	want := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)
	for _, raw := range []string{"2035-04-01 20:00:00", "2035-04-01T20:00", "2035-04-01T22:00:00+02:00"} {
		show, err := ParseShow(url.Values{"artist_id": {"4"}, "venue_id": {"1"}, "start_time": {raw}})
		if err != nil {
			t.Fatalf("ParseShow(%q) error: %v", raw, err)
		}
		if !show.StartTime.Equal(want) {
			t.Fatalf("ParseShow(%q) start = %v, want %v", raw, show.StartTime, want)
		}
		if show.ArtistID != 4 || show.VenueID != 1 {
			t.Fatalf("unexpected IDs: %#v", show)
		}
	}
}

func TestParseShowRejectsBadInput(t *testing.T) {
	_, err := ParseShow(url.Values{"artist_id": {"abc"}, "start_time": {"tomorrow"}})

	var problems FieldErrors
	if !errors.As(err, &problems) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	for _, name := range []string{"artist_id", "venue_id", "start_time"} {
		if _, ok := problems[name]; !ok {
			t.Fatalf("expected an error for %q, got %#v", name, problems)
		}
	}
}

func TestParseShowRejectsZeroID(t *testing.T) {
	_, err := ParseShow(url.Values{"artist_id": {"0"}, "venue_id": {"1"}, "start_time": {"2035-04-01 20:00:00"}})

	var problems FieldErrors
	if !errors.As(err, &problems) || problems["artist_id"] == "" {
		t.Fatalf("expected an artist_id error, got %v", err)
	}
}

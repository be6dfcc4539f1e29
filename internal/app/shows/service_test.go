package shows

import (
	"context"
	"errors"
	"testing"
	"time"

	"venuebook/internal/store"
	"venuebook/shared/go/models"
)

type stubStore struct {
	details []models.ShowDetail
	created []models.Show
}

func (s *stubStore) CreateShow(_ context.Context, show models.Show) (models.Show, error) {
	show.ID = int64(len(s.created) + 1)
	s.created = append(s.created, show)
	return show, nil
}

func (s *stubStore) ListShows(context.Context) ([]models.ShowDetail, error) {
	return s.details, nil
}

type stubLookup struct {
	venues  map[int64]bool
	artists map[int64]bool
}

func (l stubLookup) GetVenue(_ context.Context, id int64) (models.Venue, error) {
	if !l.venues[id] {
		return models.Venue{}, store.ErrVenueNotFound
	}
	return models.Venue{ID: id}, nil
}

func (l stubLookup) GetArtist(_ context.Context, id int64) (models.Artist, error) {
	if !l.artists[id] {
		return models.Artist{}, store.ErrArtistNotFound
	}
	return models.Artist{ID: id}, nil
}

func TestCreateRejectsUnknownReferences(t *testing.T) {
	lookup := stubLookup{venues: map[int64]bool{1: true}, artists: map[int64]bool{4: true}}
	start := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		show models.Show
		want error
	}{
		{name: "unknown venue", show: models.Show{VenueID: 9, ArtistID: 4, StartTime: start}, want: store.ErrUnknownVenue},
		{name: "unknown artist", show: models.Show{VenueID: 1, ArtistID: 9, StartTime: start}, want: store.ErrUnknownArtist},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st := &stubStore{}
			svc := New(st, lookup)

			if _, err := svc.Create(context.Background(), tc.show); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if len(st.created) != 0 {
				t.Fatalf("no show should be written, got %#v", st.created)
			}
		})
	}
}

func TestCreateBooksShow(t *testing.T) {
	lookup := stubLookup{venues: map[int64]bool{1: true}, artists: map[int64]bool{4: true}}
	st := &stubStore{}
	svc := New(st, lookup)

	show, err := svc.Create(context.Background(), models.Show{VenueID: 1, ArtistID: 4, StartTime: time.Now()})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if show.ID != 1 || len(st.created) != 1 {
		t.Fatalf("unexpected create result: %#v", show)
	}
}

func TestListFlattensDetails(t *testing.T) {
	start := time.Date(2019, 5, 21, 21, 30, 0, 0, time.UTC)
	st := &stubStore{details: []models.ShowDetail{{
		Show:            models.Show{ID: 1, VenueID: 1, ArtistID: 4, StartTime: start},
		VenueName:       "The Musical Hop",
		ArtistName:      "Guns N Petals",
		ArtistImageLink: "https://images.example/petals.jpg",
	}}}
	svc := New(st, nil)

	listings, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	want := Listing{
		VenueID: 1, VenueName: "The Musical Hop", ArtistID: 4, ArtistName: "Guns N Petals",
		ArtistImageLink: "https://images.example/petals.jpg", StartTime: start,
	}
	if len(listings) != 1 || listings[0] != want {
		t.Fatalf("expected %#v, got %#v", want, listings)
	}
}

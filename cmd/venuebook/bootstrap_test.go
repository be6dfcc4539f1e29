package main

import (
	"context"
	"testing"
	"time"

	"venuebook/shared/go/models"
)

type recordingStore struct {
	existing []models.VenueSummary
	venues   []models.Venue
	artists  []models.Artist
	shows    []models.Show
}

func (s *recordingStore) ListVenueSummaries(context.Context, time.Time) ([]models.VenueSummary, error) {
	return s.existing, nil
}

func (s *recordingStore) CreateVenue(_ context.Context, venue models.Venue) (models.Venue, error) {
	venue.ID = int64(len(s.venues) + 1)
	s.venues = append(s.venues, venue)
	return venue, nil
}

func (s *recordingStore) CreateArtist(_ context.Context, artist models.Artist) (models.Artist, error) {
	artist.ID = int64(len(s.artists) + 100)
	s.artists = append(s.artists, artist)
	return artist, nil
}

func (s *recordingStore) CreateShow(_ context.Context, show models.Show) (models.Show, error) {
	show.ID = int64(len(s.shows) + 1)
	s.shows = append(s.shows, show)
	return show, nil
}

func TestBootstrapDemoDataSeedsEmptyDirectory(t *testing.T) {
	st := &recordingStore{}

	if err := bootstrapDemoData(context.Background(), st); err != nil {
		t.Fatalf("bootstrapDemoData error: %v", err)
	}

	if len(st.venues) != 3 || len(st.artists) != 3 || len(st.shows) != 5 {
		t.Fatalf("unexpected seed counts: %d venues, %d artists, %d shows", len(st.venues), len(st.artists), len(st.shows))
	}
	if got := st.venues[0].Genres; len(got) != 5 || got[0] != "Jazz" {
		t.Fatalf("unexpected genres for The Musical Hop: %#v", got)
	}
	last := st.shows[4]
	if last.VenueID != 3 || last.ArtistID != 102 {
		t.Fatalf("show should reference the created IDs, got %#v", last)
	}
}

func TestBootstrapDemoDataSkipsPopulatedDirectory(t *testing.T) {
	st := &recordingStore{existing: []models.VenueSummary{{ID: 1, Name: "Existing"}}}

	if err := bootstrapDemoData(context.Background(), st); err != nil {
		t.Fatalf("bootstrapDemoData error: %v", err)
	}
	if len(st.venues) != 0 || len(st.shows) != 0 {
		t.Fatalf("populated directory should not be seeded")
	}
}

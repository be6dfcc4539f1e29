package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"venuebook/shared/go/models"
)

type seedStore interface {
	ListVenueSummaries(ctx context.Context, now time.Time) ([]models.VenueSummary, error)
	CreateVenue(ctx context.Context, venue models.Venue) (models.Venue, error)
	CreateArtist(ctx context.Context, artist models.Artist) (models.Artist, error)
	CreateShow(ctx context.Context, show models.Show) (models.Show, error)
}

type demoVenue struct {
	venue  models.Venue
	genres string
}

type demoArtist struct {
	artist models.Artist
	genres string
}

type demoShow struct {
	venue, artist int // indexes into the demo venues and artists
	start         string
}

var demoVenues = []demoVenue{
	{
		genres: "Jazz,Reggae,Swing,Classical,Folk",
		venue: models.Venue{
			Name:               "The Musical Hop",
			City:               "San Francisco",
			State:              "CA",
			Address:            "1015 Folsom Street",
			Phone:              "123-123-1234",
			Website:            "https://www.themusicalhop.com",
			FacebookLink:       "https://www.facebook.com/TheMusicalHop",
			SeekingTalent:      true,
			SeekingDescription: "We are on the lookout for a local artist to play every two weeks. Please call us.",
		},
	},
	{
		genres: "Classical,R&B,Hip-Hop",
		venue: models.Venue{
			Name:         "The Dueling Pianos Bar",
			City:         "New York",
			State:        "NY",
			Address:      "335 Delancey Street",
			Phone:        "914-003-1132",
			Website:      "https://www.theduelingpianos.com",
			FacebookLink: "https://www.facebook.com/theduelingpianos",
		},
	},
	{
		genres: "Rock n Roll,Jazz,Classical,Folk",
		venue: models.Venue{
			Name:         "Park Square Live Music & Coffee",
			City:         "San Francisco",
			State:        "CA",
			Address:      "34 Whiskey Moore Ave",
			Phone:        "415-000-1234",
			Website:      "https://www.parksquarelivemusicandcoffee.com",
			FacebookLink: "https://www.facebook.com/ParkSquareLiveMusicAndCoffee",
		},
	},
}

var demoArtists = []demoArtist{
	{
		genres: "Rock n Roll",
		artist: models.Artist{
			Name:               "Guns N Petals",
			City:               "San Francisco",
			State:              "CA",
			Phone:              "326-123-5000",
			Website:            "https://www.gunsnpetalsband.com",
			FacebookLink:       "https://www.facebook.com/GunsNPetals",
			SeekingVenue:       true,
			SeekingDescription: "Looking for shows to perform at in the San Francisco Bay Area!",
		},
	},
	{
		genres: "Jazz",
		artist: models.Artist{
			Name:         "Matt Quevedo",
			City:         "New York",
			State:        "NY",
			Phone:        "300-400-5000",
			FacebookLink: "https://www.facebook.com/mattquevedo923251523",
		},
	},
	{
		genres: "Jazz,Classical",
		artist: models.Artist{
			Name:  "The Wild Sax Band",
			City:  "San Francisco",
			State: "CA",
			Phone: "432-325-5432",
		},
	},
}

var demoShows = []demoShow{
	{venue: 0, artist: 0, start: "2019-05-21T21:30:00Z"},
	{venue: 2, artist: 1, start: "2019-06-15T23:00:00Z"},
	{venue: 2, artist: 2, start: "2035-04-01T20:00:00Z"},
	{venue: 2, artist: 2, start: "2035-04-08T20:00:00Z"},
	{venue: 2, artist: 2, start: "2035-04-15T20:00:00Z"},
}

// bootstrapDemoData fills an empty directory with the demo venues, artists
// and shows. A directory that already lists venues is left untouched.
func bootstrapDemoData(ctx context.Context, st seedStore) error {
	existing, err := st.ListVenueSummaries(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("check existing venues: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	venueIDs := make([]int64, 0, len(demoVenues))
	for _, d := range demoVenues {
		venue := d.venue
		venue.Genres = models.ParseLegacyGenres(d.genres)
		created, err := st.CreateVenue(ctx, venue)
		if err != nil {
			return fmt.Errorf("seed venue %s: %w", venue.Name, err)
		}
		venueIDs = append(venueIDs, created.ID)
	}

	artistIDs := make([]int64, 0, len(demoArtists))
	for _, d := range demoArtists {
		artist := d.artist
		artist.Genres = models.ParseLegacyGenres(d.genres)
		created, err := st.CreateArtist(ctx, artist)
		if err != nil {
			return fmt.Errorf("seed artist %s: %w", artist.Name, err)
		}
		artistIDs = append(artistIDs, created.ID)
	}

	for _, d := range demoShows {
		start, err := time.Parse(time.RFC3339, d.start)
		if err != nil {
			return fmt.Errorf("seed show: %w", err)
		}
		if _, err := st.CreateShow(ctx, models.Show{
			VenueID:   venueIDs[d.venue],
			ArtistID:  artistIDs[d.artist],
			StartTime: start,
		}); err != nil {
			return fmt.Errorf("seed show: %w", err)
		}
	}

	log.Info().
		Int("venues", len(venueIDs)).
		Int("artists", len(artistIDs)).
		Int("shows", len(demoShows)).
		Msg("demo data seeded")
	return nil
}

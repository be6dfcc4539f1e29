package shows

import (
	"context"
	"errors"
	"time"

	"venuebook/internal/store"
	"venuebook/shared/go/models"
)

// Store defines persistence operations for shows
type Store interface {
	CreateShow(ctx context.Context, show models.Show) (models.Show, error)
	ListShows(ctx context.Context) ([]models.ShowDetail, error)
}

// Lookup allows validating that the venue and artist exist before a show is
// booked.
type Lookup interface {
	GetVenue(ctx context.Context, id int64) (models.Venue, error)
	GetArtist(ctx context.Context, id int64) (models.Artist, error)
}

// Listing is an entry of the show index.
type Listing struct {
	VenueID         int64     `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	ArtistID        int64     `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// Service coordinates show listings and bookings
type Service interface {
	List(ctx context.Context) ([]Listing, error)
	Create(ctx context.Context, show models.Show) (models.Show, error)
}

type service struct {
	store  Store
	lookup Lookup // Optional: reject unknown venues and artists early
}

// New constructs a shows Service
func New(st Store, lookup Lookup) Service {
	return &service{store: st, lookup: lookup}
}

func (s *service) List(ctx context.Context) ([]Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	details, err := s.store.ListShows(ctx)
	if err != nil {
		return nil, err
	}

	listings := make([]Listing, 0, len(details))
	for _, d := range details {
		listings = append(listings, Listing{
			VenueID:         d.VenueID,
			VenueName:       d.VenueName,
			ArtistID:        d.ArtistID,
			ArtistName:      d.ArtistName,
			ArtistImageLink: d.ArtistImageLink,
			StartTime:       d.StartTime,
		})
	}
	return listings, nil
}

func (s *service) Create(ctx context.Context, show models.Show) (models.Show, error) {
	if err := ctx.Err(); err != nil {
		return models.Show{}, err
	}

	if s.lookup != nil {
		if _, err := s.lookup.GetVenue(ctx, show.VenueID); err != nil {
			if errors.Is(err, store.ErrVenueNotFound) {
				return models.Show{}, store.ErrUnknownVenue
			}
			return models.Show{}, err
		}
		if _, err := s.lookup.GetArtist(ctx, show.ArtistID); err != nil {
			if errors.Is(err, store.ErrArtistNotFound) {
				return models.Show{}, store.ErrUnknownArtist
			}
			return models.Show{}, err
		}
	}

	// The foreign keys still guard against a record deleted after the check.
	return s.store.CreateShow(ctx, show)
}

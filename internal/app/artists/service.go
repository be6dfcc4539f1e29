package artists

import (
	"context"
	"time"

	"venuebook/internal/store"
	"venuebook/shared/go/models"
)

// Store defines persistence operations for artists
type Store interface {
	CreateArtist(ctx context.Context, artist models.Artist) (models.Artist, error)
	GetArtist(ctx context.Context, id int64) (models.Artist, error)
	UpdateArtist(ctx context.Context, id int64, artist models.Artist) (models.Artist, error)
	DeleteArtist(ctx context.Context, id int64, policy store.DeletePolicy) error
	ListArtistSummaries(ctx context.Context, now time.Time) ([]models.ArtistSummary, error)
	SearchArtists(ctx context.Context, term string, now time.Time) ([]models.ArtistSummary, error)
	ListShowsForArtist(ctx context.Context, artistID int64, window models.ShowWindow) ([]models.ShowDetail, error)
}

// Listing is an entry of the artist index.
type Listing struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SearchResult is the payload of an artist name search.
type SearchResult struct {
	Count int                    `json:"count"`
	Data  []models.ArtistSummary `json:"data"`
}

// VenueShow is a show seen from the artist side.
type VenueShow struct {
	VenueID        int64     `json:"venue_id"`
	VenueName      string    `json:"venue_name"`
	VenueImageLink string    `json:"venue_image_link"`
	StartTime      time.Time `json:"start_time"`
}

// Detail is an artist together with their past and upcoming shows.
type Detail struct {
	models.Artist
	PastShows          []VenueShow `json:"past_shows"`
	UpcomingShows      []VenueShow `json:"upcoming_shows"`
	PastShowsCount     int         `json:"past_shows_count"`
	UpcomingShowsCount int         `json:"upcoming_shows_count"`
}

// Service coordinates artist browsing and mutations
type Service interface {
	List(ctx context.Context) ([]Listing, error)
	Search(ctx context.Context, term string) (SearchResult, error)
	Detail(ctx context.Context, id int64) (Detail, error)
	Get(ctx context.Context, id int64) (models.Artist, error)
	Create(ctx context.Context, artist models.Artist) (models.Artist, error)
	Update(ctx context.Context, id int64, artist models.Artist) (models.Artist, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	store  Store
	policy store.DeletePolicy
	now    func() time.Time
}

// New constructs an artists Service. A nil clock defaults to time.Now.
func New(st Store, policy store.DeletePolicy, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{store: st, policy: policy, now: now}
}

func (s *service) List(ctx context.Context) ([]Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summaries, err := s.store.ListArtistSummaries(ctx, s.now())
	if err != nil {
		return nil, err
	}

	listings := make([]Listing, 0, len(summaries))
	for _, a := range summaries {
		listings = append(listings, Listing{ID: a.ID, Name: a.Name})
	}
	return listings, nil
}

func (s *service) Search(ctx context.Context, term string) (SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return SearchResult{}, err
	}

	matches, err := s.store.SearchArtists(ctx, term, s.now())
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{Count: len(matches), Data: matches}, nil
}

func (s *service) Detail(ctx context.Context, id int64) (Detail, error) {
	if err := ctx.Err(); err != nil {
		return Detail{}, err
	}

	artist, err := s.store.GetArtist(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	now := s.now()
	past, err := s.store.ListShowsForArtist(ctx, id, models.Past(now))
	if err != nil {
		return Detail{}, err
	}
	upcoming, err := s.store.ListShowsForArtist(ctx, id, models.Upcoming(now))
	if err != nil {
		return Detail{}, err
	}

	return Detail{
		Artist:             artist,
		PastShows:          venueShows(past),
		UpcomingShows:      venueShows(upcoming),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

func (s *service) Get(ctx context.Context, id int64) (models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return models.Artist{}, err
	}
	return s.store.GetArtist(ctx, id)
}

func (s *service) Create(ctx context.Context, artist models.Artist) (models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return models.Artist{}, err
	}
	return s.store.CreateArtist(ctx, artist)
}

func (s *service) Update(ctx context.Context, id int64, artist models.Artist) (models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return models.Artist{}, err
	}
	return s.store.UpdateArtist(ctx, id, artist)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteArtist(ctx, id, s.policy)
}

func venueShows(details []models.ShowDetail) []VenueShow {
	shows := make([]VenueShow, 0, len(details))
	for _, d := range details {
		shows = append(shows, VenueShow{
			VenueID:        d.VenueID,
			VenueName:      d.VenueName,
			VenueImageLink: d.VenueImageLink,
			StartTime:      d.StartTime,
		})
	}
	return shows
}

package venues

import (
	"context"
	"time"

	"venuebook/internal/store"
	"venuebook/shared/go/models"
)

// Store defines persistence operations for venues
type Store interface {
	CreateVenue(ctx context.Context, venue models.Venue) (models.Venue, error)
	GetVenue(ctx context.Context, id int64) (models.Venue, error)
	UpdateVenue(ctx context.Context, id int64, venue models.Venue) (models.Venue, error)
	DeleteVenue(ctx context.Context, id int64, policy store.DeletePolicy) error
	ListVenueSummaries(ctx context.Context, now time.Time) ([]models.VenueSummary, error)
	SearchVenues(ctx context.Context, term string, now time.Time) ([]models.VenueSummary, error)
	ListShowsForVenue(ctx context.Context, venueID int64, window models.ShowWindow) ([]models.ShowDetail, error)
}

// Area groups the venues located in one city.
type Area struct {
	City   string                `json:"city"`
	State  string                `json:"state"`
	Venues []models.VenueSummary `json:"venues"`
}

// SearchResult is the payload of a venue name search.
type SearchResult struct {
	Count int                   `json:"count"`
	Data  []models.VenueSummary `json:"data"`
}

// ArtistShow is a show seen from the venue side.
type ArtistShow struct {
	ArtistID        int64     `json:"artist_id"`
	ArtistName      string    `json:"artist_name"`
	ArtistImageLink string    `json:"artist_image_link"`
	StartTime       time.Time `json:"start_time"`
}

// Detail is a venue together with its past and upcoming shows.
type Detail struct {
	models.Venue
	PastShows          []ArtistShow `json:"past_shows"`
	UpcomingShows      []ArtistShow `json:"upcoming_shows"`
	PastShowsCount     int          `json:"past_shows_count"`
	UpcomingShowsCount int          `json:"upcoming_shows_count"`
}

// Service coordinates venue browsing and mutations
type Service interface {
	ListAreas(ctx context.Context) ([]Area, error)
	Search(ctx context.Context, term string) (SearchResult, error)
	Detail(ctx context.Context, id int64) (Detail, error)
	Get(ctx context.Context, id int64) (models.Venue, error)
	Create(ctx context.Context, venue models.Venue) (models.Venue, error)
	Update(ctx context.Context, id int64, venue models.Venue) (models.Venue, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	store  Store
	policy store.DeletePolicy
	now    func() time.Time
}

// New constructs a venues Service. A nil clock defaults to time.Now.
func New(st Store, policy store.DeletePolicy, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{store: st, policy: policy, now: now}
}

func (s *service) ListAreas(ctx context.Context) ([]Area, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summaries, err := s.store.ListVenueSummaries(ctx, s.now())
	if err != nil {
		return nil, err
	}
	return groupByArea(summaries), nil
}

func (s *service) Search(ctx context.Context, term string) (SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return SearchResult{}, err
	}

	matches, err := s.store.SearchVenues(ctx, term, s.now())
	if err != nil {
		return SearchResult{}, err
	}
	for i := range matches {
		matches[i].City, matches[i].State = "", ""
	}
	return SearchResult{Count: len(matches), Data: matches}, nil
}

func (s *service) Detail(ctx context.Context, id int64) (Detail, error) {
	if err := ctx.Err(); err != nil {
		return Detail{}, err
	}

	venue, err := s.store.GetVenue(ctx, id)
	if err != nil {
		return Detail{}, err
	}

	now := s.now()
	past, err := s.store.ListShowsForVenue(ctx, id, models.Past(now))
	if err != nil {
		return Detail{}, err
	}
	upcoming, err := s.store.ListShowsForVenue(ctx, id, models.Upcoming(now))
	if err != nil {
		return Detail{}, err
	}

	return Detail{
		Venue:              venue,
		PastShows:          artistShows(past),
		UpcomingShows:      artistShows(upcoming),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}, nil
}

func (s *service) Get(ctx context.Context, id int64) (models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return models.Venue{}, err
	}
	return s.store.GetVenue(ctx, id)
}

func (s *service) Create(ctx context.Context, venue models.Venue) (models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return models.Venue{}, err
	}
	return s.store.CreateVenue(ctx, venue)
}

func (s *service) Update(ctx context.Context, id int64, venue models.Venue) (models.Venue, error) {
	if err := ctx.Err(); err != nil {
		return models.Venue{}, err
	}
	return s.store.UpdateVenue(ctx, id, venue)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.DeleteVenue(ctx, id, s.policy)
}

// groupByArea buckets summaries per (city, state) in first-seen order. A venue
// appears at most once per area, keyed by ID.
func groupByArea(summaries []models.VenueSummary) []Area {
	type areaKey struct{ city, state string }

	areas := []Area{}
	index := make(map[areaKey]int)
	seen := make(map[int64]struct{}, len(summaries))

	for _, v := range summaries {
		if _, dup := seen[v.ID]; dup {
			continue
		}
		seen[v.ID] = struct{}{}

		key := areaKey{city: v.City, state: v.State}
		i, ok := index[key]
		if !ok {
			i = len(areas)
			index[key] = i
			areas = append(areas, Area{City: v.City, State: v.State, Venues: []models.VenueSummary{}})
		}

		areas[i].Venues = append(areas[i].Venues, models.VenueSummary{
			ID:               v.ID,
			Name:             v.Name,
			NumUpcomingShows: v.NumUpcomingShows,
		})
	}

	return areas
}

func artistShows(details []models.ShowDetail) []ArtistShow {
	shows := make([]ArtistShow, 0, len(details))
	for _, d := range details {
		shows = append(shows, ArtistShow{
			ArtistID:        d.ArtistID,
			ArtistName:      d.ArtistName,
			ArtistImageLink: d.ArtistImageLink,
			StartTime:       d.StartTime,
		})
	}
	return shows
}

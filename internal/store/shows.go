package store

import (
	"context"
	"database/sql"
	"fmt"

	"venuebook/shared/go/models"
)

// CreateShow inserts a show. A missing venue or artist yields ErrUnknownVenue
// or ErrUnknownArtist and nothing is written.
func (s *Store) CreateShow(ctx context.Context, show models.Show) (models.Show, error) {
	show.StartTime = show.StartTime.UTC()

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO shows (venue_id, artist_id, start_time)
			VALUES ($1, $2, $3)
			RETURNING id
		`, show.VenueID, show.ArtistID, show.StartTime).Scan(&show.ID)
		if err == nil {
			return nil
		}

		if constraint, ok := foreignKeyViolation(err); ok {
			switch constraint {
			case showsVenueFKey:
				return ErrUnknownVenue
			case showsArtistFKey:
				return ErrUnknownArtist
			}
		}
		return fmt.Errorf("insert show: %w", err)
	})
	if err != nil {
		return models.Show{}, err
	}

	return show, nil
}

// ListShows returns every show with its venue and artist, ordered by start time.
func (s *Store) ListShows(ctx context.Context) ([]models.ShowDetail, error) {
	return s.queryShows(ctx, nil, nil)
}

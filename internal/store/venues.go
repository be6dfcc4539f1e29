package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"venuebook/shared/go/models"
)

// CreateVenue inserts a venue and returns it with its generated ID.
func (s *Store) CreateVenue(ctx context.Context, venue models.Venue) (models.Venue, error) {
	venue.Genres = models.NormalizeGenres(venue.Genres)
	genresJSON, err := marshalGenres(venue.Genres)
	if err != nil {
		return models.Venue{}, err
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO venues (name, city, state, address, phone, image_link, facebook_link,
			                    genres, website, seeking_talent, seeking_description)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9, $10, $11)
			RETURNING id
		`, venue.Name, venue.City, venue.State, venue.Address, venue.Phone, venue.ImageLink,
			venue.FacebookLink, genresJSON, venue.Website, venue.SeekingTalent,
			venue.SeekingDescription,
		).Scan(&venue.ID); err != nil {
			return fmt.Errorf("insert venue: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Venue{}, err
	}

	return venue, nil
}

// GetVenue retrieves a single venue by ID.
func (s *Store) GetVenue(ctx context.Context, id int64) (models.Venue, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, city, state, address, phone, image_link, facebook_link,
		       genres, website, seeking_talent, seeking_description
		FROM venues
		WHERE id = $1
	`, id)

	venue, err := scanVenue(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Venue{}, ErrVenueNotFound
	}
	if err != nil {
		return models.Venue{}, err
	}
	return venue, nil
}

// UpdateVenue overwrites every mutable field of an existing venue.
func (s *Store) UpdateVenue(ctx context.Context, id int64, venue models.Venue) (models.Venue, error) {
	genresJSON, err := marshalGenres(venue.Genres)
	if err != nil {
		return models.Venue{}, err
	}

	var updated models.Venue
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			UPDATE venues
			SET name = $1, city = $2, state = $3, address = $4, phone = $5,
			    image_link = $6, facebook_link = $7, genres = $8::jsonb, website = $9,
			    seeking_talent = $10, seeking_description = $11
			WHERE id = $12
			RETURNING id, name, city, state, address, phone, image_link, facebook_link,
			          genres, website, seeking_talent, seeking_description
		`, venue.Name, venue.City, venue.State, venue.Address, venue.Phone, venue.ImageLink,
			venue.FacebookLink, genresJSON, venue.Website, venue.SeekingTalent,
			venue.SeekingDescription, id)

		v, err := scanVenue(row)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVenueNotFound
		}
		if err != nil {
			return fmt.Errorf("update venue: %w", err)
		}
		updated = v
		return nil
	})
	if err != nil {
		return models.Venue{}, err
	}

	return updated, nil
}

// DeleteVenue removes a venue, applying policy to the shows it still owns.
func (s *Store) DeleteVenue(ctx context.Context, id int64, policy DeletePolicy) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := clearShows(ctx, tx, "venue_id", id, policy); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
		if err != nil {
			if _, ok := foreignKeyViolation(err); ok {
				return ErrHasShows
			}
			return fmt.Errorf("delete venue: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete venue: %w", err)
		}
		if rows == 0 {
			return ErrVenueNotFound
		}
		return nil
	})
}

// ListVenueSummaries returns every venue with its number of shows starting
// after now, ordered by state, city and ID.
func (s *Store) ListVenueSummaries(ctx context.Context, now time.Time) ([]models.VenueSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT v.id, v.name, v.city, v.state,
		       COUNT(s.id) FILTER (WHERE s.start_time > $1) AS num_upcoming_shows
		FROM venues v
		LEFT JOIN shows s ON s.venue_id = v.id
		GROUP BY v.id
		ORDER BY v.state ASC, v.city ASC, v.id ASC
	`, now)
	if err != nil {
		return nil, fmt.Errorf("select venues: %w", err)
	}
	defer rows.Close()

	return scanVenueSummaries(rows)
}

// SearchVenues returns venues whose name contains term, ignoring case,
// ordered by ID.
func (s *Store) SearchVenues(ctx context.Context, term string, now time.Time) ([]models.VenueSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT v.id, v.name, v.city, v.state,
		       COUNT(s.id) FILTER (WHERE s.start_time > $1) AS num_upcoming_shows
		FROM venues v
		LEFT JOIN shows s ON s.venue_id = v.id
		WHERE v.name ILIKE $2
		GROUP BY v.id
		ORDER BY v.id ASC
	`, now, likePattern(strings.TrimSpace(term)))
	if err != nil {
		return nil, fmt.Errorf("search venues: %w", err)
	}
	defer rows.Close()

	return scanVenueSummaries(rows)
}

// ListShowsForVenue returns the shows held at a venue within window, ordered
// by start time.
func (s *Store) ListShowsForVenue(ctx context.Context, venueID int64, window models.ShowWindow) ([]models.ShowDetail, error) {
	args := []any{venueID}
	clauses, args := showWindowClauses(window, args)
	clauses = append([]string{"s.venue_id = $1"}, clauses...)
	return s.queryShows(ctx, clauses, args)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenue(row rowScanner) (models.Venue, error) {
	var (
		v      models.Venue
		genres []byte
	)
	if err := row.Scan(
		&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &v.ImageLink,
		&v.FacebookLink, &genres, &v.Website, &v.SeekingTalent, &v.SeekingDescription,
	); err != nil {
		return models.Venue{}, err
	}

	decoded, err := unmarshalGenres(genres)
	if err != nil {
		return models.Venue{}, err
	}
	v.Genres = decoded
	return v, nil
}

func scanVenueSummaries(rows *sql.Rows) ([]models.VenueSummary, error) {
	venues := []models.VenueSummary{}
	for rows.Next() {
		var v models.VenueSummary
		if err := rows.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.NumUpcomingShows); err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate venues: %w", err)
	}
	return venues, nil
}

// clearShows enforces policy for the shows referencing a venue or artist.
// column is either venue_id or artist_id.
func clearShows(ctx context.Context, tx *sql.Tx, column string, id int64, policy DeletePolicy) error {
	switch policy {
	case DeleteCascade:
		if _, err := tx.ExecContext(ctx, `DELETE FROM shows WHERE `+column+` = $1`, id); err != nil {
			return fmt.Errorf("delete shows: %w", err)
		}
		return nil
	case DeleteReject, "":
		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM shows WHERE `+column+` = $1`, id).Scan(&count); err != nil {
			return fmt.Errorf("count shows: %w", err)
		}
		if count > 0 {
			return ErrHasShows
		}
		return nil
	default:
		return fmt.Errorf("unknown delete policy %q", policy)
	}
}

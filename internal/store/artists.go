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

// CreateArtist inserts an artist and returns it with its generated ID.
func (s *Store) CreateArtist(ctx context.Context, artist models.Artist) (models.Artist, error) {
	artist.Genres = models.NormalizeGenres(artist.Genres)
	genresJSON, err := marshalGenres(artist.Genres)
	if err != nil {
		return models.Artist{}, err
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO artists (name, city, state, phone, genres, website, image_link,
			                     facebook_link, seeking_venue, seeking_description)
			VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7, $8, $9, $10)
			RETURNING id
		`, artist.Name, artist.City, artist.State, artist.Phone, genresJSON, artist.Website,
			artist.ImageLink, artist.FacebookLink, artist.SeekingVenue, artist.SeekingDescription,
		).Scan(&artist.ID); err != nil {
			return fmt.Errorf("insert artist: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Artist{}, err
	}

	return artist, nil
}

// GetArtist retrieves a single artist by ID.
func (s *Store) GetArtist(ctx context.Context, id int64) (models.Artist, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, city, state, phone, genres, website, image_link,
		       facebook_link, seeking_venue, seeking_description
		FROM artists
		WHERE id = $1
	`, id)

	artist, err := scanArtist(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Artist{}, ErrArtistNotFound
	}
	if err != nil {
		return models.Artist{}, err
	}
	return artist, nil
}

// UpdateArtist overwrites every mutable field of an existing artist.
func (s *Store) UpdateArtist(ctx context.Context, id int64, artist models.Artist) (models.Artist, error) {
	genresJSON, err := marshalGenres(artist.Genres)
	if err != nil {
		return models.Artist{}, err
	}

	var updated models.Artist
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			UPDATE artists
			SET name = $1, city = $2, state = $3, phone = $4, genres = $5::jsonb,
			    website = $6, image_link = $7, facebook_link = $8, seeking_venue = $9,
			    seeking_description = $10
			WHERE id = $11
			RETURNING id, name, city, state, phone, genres, website, image_link,
			          facebook_link, seeking_venue, seeking_description
		`, artist.Name, artist.City, artist.State, artist.Phone, genresJSON, artist.Website,
			artist.ImageLink, artist.FacebookLink, artist.SeekingVenue, artist.SeekingDescription, id)

		a, err := scanArtist(row)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrArtistNotFound
		}
		if err != nil {
			return fmt.Errorf("update artist: %w", err)
		}
		updated = a
		return nil
	})
	if err != nil {
		return models.Artist{}, err
	}

	return updated, nil
}

// DeleteArtist removes an artist, applying policy to the shows it still plays.
func (s *Store) DeleteArtist(ctx context.Context, id int64, policy DeletePolicy) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := clearShows(ctx, tx, "artist_id", id, policy); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM artists WHERE id = $1`, id)
		if err != nil {
			if _, ok := foreignKeyViolation(err); ok {
				return ErrHasShows
			}
			return fmt.Errorf("delete artist: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete artist: %w", err)
		}
		if rows == 0 {
			return ErrArtistNotFound
		}
		return nil
	})
}

// ListArtistSummaries returns every artist ordered by ID together with the
// number of shows starting after now.
func (s *Store) ListArtistSummaries(ctx context.Context, now time.Time) ([]models.ArtistSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.name,
		       COUNT(s.id) FILTER (WHERE s.start_time > $1) AS num_upcoming_shows
		FROM artists a
		LEFT JOIN shows s ON s.artist_id = a.id
		GROUP BY a.id
		ORDER BY a.id ASC
	`, now)
	if err != nil {
		return nil, fmt.Errorf("select artists: %w", err)
	}
	defer rows.Close()

	return scanArtistSummaries(rows)
}

// SearchArtists returns artists whose name contains term, ignoring case,
// ordered by ID.
func (s *Store) SearchArtists(ctx context.Context, term string, now time.Time) ([]models.ArtistSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.name,
		       COUNT(s.id) FILTER (WHERE s.start_time > $1) AS num_upcoming_shows
		FROM artists a
		LEFT JOIN shows s ON s.artist_id = a.id
		WHERE a.name ILIKE $2
		GROUP BY a.id
		ORDER BY a.id ASC
	`, now, likePattern(strings.TrimSpace(term)))
	if err != nil {
		return nil, fmt.Errorf("search artists: %w", err)
	}
	defer rows.Close()

	return scanArtistSummaries(rows)
}

// ListShowsForArtist returns the shows played by an artist within window,
// ordered by start time.
func (s *Store) ListShowsForArtist(ctx context.Context, artistID int64, window models.ShowWindow) ([]models.ShowDetail, error) {
	args := []any{artistID}
	clauses, args := showWindowClauses(window, args)
	clauses = append([]string{"s.artist_id = $1"}, clauses...)
	return s.queryShows(ctx, clauses, args)
}

func scanArtist(row rowScanner) (models.Artist, error) {
	var (
		a      models.Artist
		genres []byte
	)
	if err := row.Scan(
		&a.ID, &a.Name, &a.City, &a.State, &a.Phone, &genres, &a.Website, &a.ImageLink,
		&a.FacebookLink, &a.SeekingVenue, &a.SeekingDescription,
	); err != nil {
		return models.Artist{}, err
	}

	decoded, err := unmarshalGenres(genres)
	if err != nil {
		return models.Artist{}, err
	}
	a.Genres = decoded
	return a, nil
}

func scanArtistSummaries(rows *sql.Rows) ([]models.ArtistSummary, error) {
	artists := []models.ArtistSummary{}
	for rows.Next() {
		var a models.ArtistSummary
		if err := rows.Scan(&a.ID, &a.Name, &a.NumUpcomingShows); err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		artists = append(artists, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artists: %w", err)
	}
	return artists, nil
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"venuebook/shared/go/models"
)

var (
	// ErrVenueNotFound signals a missing venue record.
	ErrVenueNotFound = errors.New("venue not found")
	// ErrArtistNotFound signals a missing artist record.
	ErrArtistNotFound = errors.New("artist not found")
	// ErrUnknownVenue indicates a show referencing a venue that does not exist.
	ErrUnknownVenue = errors.New("show references an unknown venue")
	// ErrUnknownArtist indicates a show referencing an artist that does not exist.
	ErrUnknownArtist = errors.New("show references an unknown artist")
	// ErrHasShows is returned when the reject delete policy protects a record
	// that still has shows.
	ErrHasShows = errors.New("record still has shows")
)

const (
	pgForeignKeyViolation = "23503"

	showsVenueFKey  = "shows_venue_id_fkey"
	showsArtistFKey = "shows_artist_id_fkey"
)

// DeletePolicy decides what happens to the shows of a deleted venue or artist.
type DeletePolicy string

const (
	// DeleteReject refuses to delete a venue or artist that still has shows.
	DeleteReject DeletePolicy = "reject"
	// DeleteCascade removes the shows together with their venue or artist.
	DeleteCascade DeletePolicy = "cascade"
)

// ParseDeletePolicy validates a configured delete policy.
func ParseDeletePolicy(raw string) (DeletePolicy, error) {
	switch p := DeletePolicy(strings.ToLower(strings.TrimSpace(raw))); p {
	case DeleteReject, DeleteCascade:
		return p, nil
	case "":
		return DeleteReject, nil
	default:
		return "", fmt.Errorf("unknown delete policy %q", raw)
	}
}

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// withTx runs fn in a transaction that is committed only if fn succeeds.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return nil
}

func foreignKeyViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

func marshalGenres(genres models.Genres) (string, error) {
	raw, err := json.Marshal(models.NormalizeGenres(genres))
	if err != nil {
		return "", fmt.Errorf("prepare genres payload: %w", err)
	}
	return string(raw), nil
}

func unmarshalGenres(raw []byte) (models.Genres, error) {
	genres := models.Genres{}
	if len(raw) == 0 {
		return genres, nil
	}
	if err := json.Unmarshal(raw, &genres); err != nil {
		return nil, fmt.Errorf("decode genres: %w", err)
	}
	if genres == nil {
		genres = models.Genres{}
	}
	return genres, nil
}

// likePattern turns a search term into an ILIKE substring pattern that
// matches the term literally.
func likePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
	return "%" + escaped + "%"
}

func showWindowClauses(window models.ShowWindow, args []any) ([]string, []any) {
	var clauses []string
	if window.After != nil {
		args = append(args, *window.After)
		clauses = append(clauses, fmt.Sprintf("s.start_time > $%d", len(args)))
	}
	if window.Before != nil {
		args = append(args, *window.Before)
		clauses = append(clauses, fmt.Sprintf("s.start_time < $%d", len(args)))
	}
	return clauses, args
}

func (s *Store) queryShows(ctx context.Context, clauses []string, args []any) ([]models.ShowDetail, error) {
	query := `
		SELECT s.id, s.venue_id, s.artist_id, s.start_time,
		       v.name, v.image_link, a.name, a.image_link
		FROM shows s
		INNER JOIN venues v ON v.id = s.venue_id
		INNER JOIN artists a ON a.id = s.artist_id
	`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY s.start_time ASC, s.id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select shows: %w", err)
	}
	defer rows.Close()

	shows := []models.ShowDetail{}
	for rows.Next() {
		var (
			d     models.ShowDetail
			start time.Time
		)
		if err := rows.Scan(
			&d.ID, &d.VenueID, &d.ArtistID, &start,
			&d.VenueName, &d.VenueImageLink, &d.ArtistName, &d.ArtistImageLink,
		); err != nil {
			return nil, fmt.Errorf("scan show: %w", err)
		}
		d.StartTime = start.UTC()
		shows = append(shows, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shows: %w", err)
	}

	return shows, nil
}

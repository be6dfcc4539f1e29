package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"venuebook/shared/go/models"
)

func TestCreateArtistStoresGenresAsJSON(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO artists`)).
		WithArgs("Guns N Petals", "San Francisco", "CA", "326-123-5000", `["Rock n Roll"]`,
			"https://gunsnpetals.com", "", "", true, "Looking for shows").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(4)))
	mock.ExpectCommit()

	got, err := s.CreateArtist(context.Background(), models.Artist{
		Name:               "Guns N Petals",
		City:               "San Francisco",
		State:              "CA",
		Phone:              "326-123-5000",
		Genres:             models.Genres{"Rock n Roll", ""},
		Website:            "https://gunsnpetals.com",
		SeekingVenue:       true,
		SeekingDescription: "Looking for shows",
	})
	if err != nil {
		t.Fatalf("CreateArtist error: %v", err)
	}
	if got.ID != 4 || len(got.Genres) != 1 {
		t.Fatalf("unexpected artist: %#v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateArtistNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE artists`)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "city", "state", "phone", "genres", "website", "image_link",
			"facebook_link", "seeking_venue", "seeking_description",
		}))
	mock.ExpectRollback()

	_, err := s.UpdateArtist(context.Background(), 404, models.Artist{Name: "Nobody"})
	if !errors.Is(err, ErrArtistNotFound) {
		t.Fatalf("expected ErrArtistNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteArtistRejectsWhenShowsExist(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM shows WHERE artist_id = $1`)).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	if err := s.DeleteArtist(context.Background(), 4, DeleteReject); !errors.Is(err, ErrHasShows) {
		t.Fatalf("expected ErrHasShows, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListArtistSummaries(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`
		FROM artists a
		LEFT JOIN shows s ON s.artist_id = a.id
		GROUP BY a.id
		ORDER BY a.id ASC
	`)).
		WithArgs(now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "num_upcoming_shows"}).
			AddRow(int64(4), "Guns N Petals", 0).
			AddRow(int64(5), "Matt Quevedo", 0).
			AddRow(int64(6), "The Wild Sax Band", 3))

	artists, err := s.ListArtistSummaries(context.Background(), now)
	if err != nil {
		t.Fatalf("ListArtistSummaries error: %v", err)
	}
	if len(artists) != 3 || artists[2].NumUpcomingShows != 3 {
		t.Fatalf("unexpected artists: %#v", artists)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSearchArtistsUsesSubstringPattern(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE a.name ILIKE $2`)).
		WithArgs(now, "%band%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "num_upcoming_shows"}).
			AddRow(int64(6), "The Wild Sax Band", 3))

	artists, err := s.SearchArtists(context.Background(), "band", now)
	if err != nil {
		t.Fatalf("SearchArtists error: %v", err)
	}
	if len(artists) != 1 || artists[0].Name != "The Wild Sax Band" {
		t.Fatalf("unexpected artists: %#v", artists)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListShowsForArtistPastWindow(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE s.artist_id = $1 AND s.start_time < $2`)).
		WithArgs(int64(4), now).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "venue_id", "artist_id", "start_time", "venue_name", "venue_image", "artist_name", "artist_image",
		}))

	shows, err := s.ListShowsForArtist(context.Background(), 4, models.Past(now))
	if err != nil {
		t.Fatalf("ListShowsForArtist error: %v", err)
	}
	if shows == nil || len(shows) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", shows)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

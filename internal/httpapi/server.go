package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"venuebook/internal/app/artists"
	"venuebook/internal/app/shows"
	"venuebook/internal/app/venues"
	"venuebook/internal/forms"
	"venuebook/internal/store"
	"venuebook/shared/go/logging"
	"venuebook/shared/go/models"
)

// VenueService describes venue browsing and editing workflows.
type VenueService interface {
	ListAreas(ctx context.Context) ([]venues.Area, error)
	Search(ctx context.Context, term string) (venues.SearchResult, error)
	Detail(ctx context.Context, id int64) (venues.Detail, error)
	Get(ctx context.Context, id int64) (models.Venue, error)
	Create(ctx context.Context, venue models.Venue) (models.Venue, error)
	Update(ctx context.Context, id int64, venue models.Venue) (models.Venue, error)
	Delete(ctx context.Context, id int64) error
}

// ArtistService describes artist browsing and editing workflows.
type ArtistService interface {
	List(ctx context.Context) ([]artists.Listing, error)
	Search(ctx context.Context, term string) (artists.SearchResult, error)
	Detail(ctx context.Context, id int64) (artists.Detail, error)
	Get(ctx context.Context, id int64) (models.Artist, error)
	Create(ctx context.Context, artist models.Artist) (models.Artist, error)
	Update(ctx context.Context, id int64, artist models.Artist) (models.Artist, error)
	Delete(ctx context.Context, id int64) error
}

// ShowService lists and books shows.
type ShowService interface {
	List(ctx context.Context) ([]shows.Listing, error)
	Create(ctx context.Context, show models.Show) (models.Show, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	venues  VenueService
	artists ArtistService
	shows   ShowService
}

// New configures a Server with the given services.
func New(venues VenueService, artists ArtistService, shows ShowService) *Server {
	return &Server{
		venues:  venues,
		artists: artists,
		shows:   shows,
	}
}

// Routes exposes the HTTP handlers for browsing and editing the directory.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.HandleFunc("GET /{$}", s.handleHome)

	// Venue routes
	mux.HandleFunc("GET /venues", s.handleListVenues)
	mux.HandleFunc("POST /venues/search", s.handleSearchVenues)
	mux.HandleFunc("GET /venues/create", s.handleVenueCreateForm)
	mux.HandleFunc("POST /venues/create", s.handleCreateVenue)
	mux.HandleFunc("GET /venues/{id}", s.handleGetVenue)
	mux.HandleFunc("DELETE /venues/{id}", s.handleDeleteVenue)
	mux.HandleFunc("GET /venues/{id}/edit", s.handleVenueEditForm)
	mux.HandleFunc("POST /venues/{id}/edit", s.handleUpdateVenue)

	// Artist routes
	mux.HandleFunc("GET /artists", s.handleListArtists)
	mux.HandleFunc("POST /artists/search", s.handleSearchArtists)
	mux.HandleFunc("GET /artists/create", s.handleArtistCreateForm)
	mux.HandleFunc("POST /artists/create", s.handleCreateArtist)
	mux.HandleFunc("GET /artists/{id}", s.handleGetArtist)
	mux.HandleFunc("DELETE /artists/{id}", s.handleDeleteArtist)
	mux.HandleFunc("GET /artists/{id}/edit", s.handleArtistEditForm)
	mux.HandleFunc("POST /artists/{id}/edit", s.handleUpdateArtist)

	// Show routes
	mux.HandleFunc("GET /shows", s.handleListShows)
	mux.HandleFunc("GET /shows/create", s.handleShowCreateForm)
	mux.HandleFunc("POST /shows/create", s.handleCreateShow)

	mux.HandleFunc("/", s.handleNotFound)

	return mux
}

// Flash is a transient message shown to the user after a request.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

func success(format string, args ...any) Flash {
	return Flash{Category: "success", Message: fmt.Sprintf(format, args...)}
}

func danger(format string, args ...any) Flash {
	return Flash{Category: "danger", Message: fmt.Sprintf(format, args...)}
}

type errorResponse struct {
	Error   string            `json:"error"`
	Errors  forms.FieldErrors `json:"errors,omitempty"`
	Flashes []Flash           `json:"flashes,omitempty"`
}

type mutationResponse struct {
	Record  any     `json:"record,omitempty"`
	Flashes []Flash `json:"flashes"`
}

type formResponse struct {
	Form   forms.Schema `json:"form"`
	Record any          `json:"record,omitempty"`
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Page string `json:"page"`
	}{Page: "home"})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
}

// parseID reads the {id} path value, answering 404 when it is not a
// positive integer.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return 0, false
	}
	return id, true
}

// parseForm reads an urlencoded body, answering 400 when it is malformed.
func parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid form body"})
		return false
	}
	return true
}

// writeFormError answers a failed mutation. failure is the generic flash used
// for persistence faults.
func writeFormError(w http.ResponseWriter, r *http.Request, err error, failure Flash) {
	var problems forms.FieldErrors
	switch {
	case errors.As(err, &problems):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "validation failed",
			Errors:  problems,
			Flashes: fieldFlashes(problems),
		})
	case errors.Is(err, store.ErrUnknownVenue):
		problems = forms.FieldErrors{"venue_id": "Venue does not exist."}
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "validation failed",
			Errors:  problems,
			Flashes: append(fieldFlashes(problems), failure),
		})
	case errors.Is(err, store.ErrUnknownArtist):
		problems = forms.FieldErrors{"artist_id": "Artist does not exist."}
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "validation failed",
			Errors:  problems,
			Flashes: append(fieldFlashes(problems), failure),
		})
	default:
		writeInternalError(w, r, err, failure)
	}
}

func writeNotFound(w http.ResponseWriter, kind string, id int64) {
	writeJSON(w, http.StatusNotFound, errorResponse{
		Error:   "not found",
		Flashes: []Flash{danger("%s %d was not found.", kind, id)},
	})
}

func writeInternalError(w http.ResponseWriter, r *http.Request, err error, flash Flash) {
	logging.WithContext(r.Context()).Error().
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("request failed")

	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error:   "internal server error",
		Flashes: []Flash{flash},
	})
}

func fieldFlashes(problems forms.FieldErrors) []Flash {
	fields := make([]string, 0, len(problems))
	for f := range problems {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	flashes := make([]Flash, 0, len(fields))
	for _, f := range fields {
		flashes = append(flashes, danger("%s: %s", f, problems[f]))
	}
	return flashes
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

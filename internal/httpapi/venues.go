package httpapi

import (
	"errors"
	"net/http"

	"venuebook/internal/app/venues"
	"venuebook/internal/forms"
	"venuebook/internal/store"
)

func (s *Server) handleListVenues(w http.ResponseWriter, r *http.Request) {
	areas, err := s.venues.ListAreas(r.Context())
	if err != nil {
		writeInternalError(w, r, err, danger("An error occurred. Venues could not be loaded."))
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Areas []venues.Area `json:"areas"`
	}{Areas: areas})
}

func (s *Server) handleSearchVenues(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	term := r.PostForm.Get("search_term")
	result, err := s.venues.Search(r.Context(), term)
	if err != nil {
		writeInternalError(w, r, err, danger("An error occurred. Search could not be completed."))
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Results    venues.SearchResult `json:"results"`
		SearchTerm string              `json:"search_term"`
	}{Results: result, SearchTerm: term})
}

func (s *Server) handleGetVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	detail, err := s.venues.Detail(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrVenueNotFound) {
			writeNotFound(w, "Venue", id)
			return
		}
		writeInternalError(w, r, err, danger("An error occurred. Venue %d could not be loaded.", id))
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleVenueCreateForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, formResponse{Form: forms.VenueSchema})
}

func (s *Server) handleCreateVenue(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	name := r.PostForm.Get("name")
	failure := danger("An error occurred. Venue %s could not be listed.", name)

	venue, err := forms.ParseVenue(r.PostForm)
	if err != nil {
		writeFormError(w, r, err, failure)
		return
	}

	created, err := s.venues.Create(r.Context(), venue)
	if err != nil {
		writeFormError(w, r, err, failure)
		return
	}

	writeJSON(w, http.StatusCreated, mutationResponse{
		Record:  created,
		Flashes: []Flash{success("Venue %s was successfully listed!", created.Name)},
	})
}

func (s *Server) handleVenueEditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	venue, err := s.venues.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrVenueNotFound) {
			writeNotFound(w, "Venue", id)
			return
		}
		writeInternalError(w, r, err, danger("An error occurred. Venue %d could not be loaded.", id))
		return
	}

	writeJSON(w, http.StatusOK, formResponse{Form: forms.VenueSchema, Record: venue})
}

func (s *Server) handleUpdateVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if !parseForm(w, r) {
		return
	}

	name := r.PostForm.Get("name")
	failure := danger("An error occurred. Venue %s could not be updated.", name)

	venue, err := forms.ParseVenue(r.PostForm)
	if err != nil {
		writeFormError(w, r, err, failure)
		return
	}

	updated, err := s.venues.Update(r.Context(), id, venue)
	if err != nil {
		if errors.Is(err, store.ErrVenueNotFound) {
			writeNotFound(w, "Venue", id)
			return
		}
		writeFormError(w, r, err, failure)
		return
	}

	writeJSON(w, http.StatusOK, mutationResponse{
		Record:  updated,
		Flashes: []Flash{success("Venue %s was successfully updated!", updated.Name)},
	})
}

func (s *Server) handleDeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	err := s.venues.Delete(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, mutationResponse{
			Flashes: []Flash{success("Venue %d was successfully deleted.", id)},
		})
	case errors.Is(err, store.ErrVenueNotFound):
		writeNotFound(w, "Venue", id)
	case errors.Is(err, store.ErrHasShows):
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:   "venue has shows",
			Flashes: []Flash{danger("Venue %d still has shows and could not be deleted.", id)},
		})
	default:
		writeInternalError(w, r, err, danger("An error occurred. Venue %d could not be deleted.", id))
	}
}

package httpapi

import (
	"errors"
	"net/http"

	"venuebook/internal/app/artists"
	"venuebook/internal/forms"
	"venuebook/internal/store"
)

func (s *Server) handleListArtists(w http.ResponseWriter, r *http.Request) {
	listings, err := s.artists.List(r.Context())
	if err != nil {
		writeInternalError(w, r, err, danger("An error occurred. Artists could not be loaded."))
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Artists []artists.Listing `json:"artists"`
	}{Artists: listings})
}

func (s *Server) handleSearchArtists(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	term := r.PostForm.Get("search_term")
	result, err := s.artists.Search(r.Context(), term)
	if err != nil {
		writeInternalError(w, r, err, danger("An error occurred. Search could not be completed."))
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Results    artists.SearchResult `json:"results"`
		SearchTerm string               `json:"search_term"`
	}{Results: result, SearchTerm: term})
}

func (s *Server) handleGetArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	detail, err := s.artists.Detail(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrArtistNotFound) {
			writeNotFound(w, "Artist", id)
			return
		}
		writeInternalError(w, r, err, danger("An error occurred. Artist %d could not be loaded.", id))
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleArtistCreateForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, formResponse{Form: forms.ArtistSchema})
}

func (s *Server) handleCreateArtist(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	failure := danger("An error occurred. Artist %s could not be listed.", r.PostForm.Get("name"))

	artist, err := forms.ParseArtist(r.PostForm)
	if err != nil {
		writeFormError(w, r, err, failure)
		return
	}

	created, err := s.artists.Create(r.Context(), artist)
	if err != nil {
		writeFormError(w, r, err, failure)
		return
	}

	writeJSON(w, http.StatusCreated, mutationResponse{
		Record:  created,
		Flashes: []Flash{success("Artist %s was successfully listed!", created.Name)},
	})
}

func (s *Server) handleArtistEditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	artist, err := s.artists.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrArtistNotFound) {
			writeNotFound(w, "Artist", id)
			return
		}
		writeInternalError(w, r, err, danger("An error occurred. Artist %d could not be loaded.", id))
		return
	}

	writeJSON(w, http.StatusOK, formResponse{Form: forms.ArtistSchema, Record: artist})
}

func (s *Server) handleUpdateArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if !parseForm(w, r) {
		return
	}

	failure := danger("An error occurred. Artist %s could not be updated.", r.PostForm.Get("name"))

	artist, err := forms.ParseArtist(r.PostForm)
	if err != nil {
		writeFormError(w, r, err, failure)
		return
	}

	updated, err := s.artists.Update(r.Context(), id, artist)
	if err != nil {
		if errors.Is(err, store.ErrArtistNotFound) {
			writeNotFound(w, "Artist", id)
			return
		}
		writeFormError(w, r, err, failure)
		return
	}

	writeJSON(w, http.StatusOK, mutationResponse{
		Record:  updated,
		Flashes: []Flash{success("Artist %s was successfully updated!", updated.Name)},
	})
}

func (s *Server) handleDeleteArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	err := s.artists.Delete(r.Context(), id)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, mutationResponse{
			Flashes: []Flash{success("Artist %d was successfully deleted.", id)},
		})
	case errors.Is(err, store.ErrArtistNotFound):
		writeNotFound(w, "Artist", id)
	case errors.Is(err, store.ErrHasShows):
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:   "artist has shows",
			Flashes: []Flash{danger("Artist %d still has shows and could not be deleted.", id)},
		})
	default:
		writeInternalError(w, r, err, danger("An error occurred. Artist %d could not be deleted.", id))
	}
}

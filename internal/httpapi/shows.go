package httpapi

import (
	"net/http"

	"venuebook/internal/app/shows"
	"venuebook/internal/forms"
)

func (s *Server) handleListShows(w http.ResponseWriter, r *http.Request) {
	listings, err := s.shows.List(r.Context())
	if err != nil {
		writeInternalError(w, r, err, danger("An error occurred. Shows could not be loaded."))
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Shows []shows.Listing `json:"shows"`
	}{Shows: listings})
}

func (s *Server) handleShowCreateForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, formResponse{Form: forms.ShowSchema})
}

func (s *Server) handleCreateShow(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	failure := danger("An error occurred. Show could not be listed.")

	show, err := forms.ParseShow(r.PostForm)
	if err != nil {
		writeFormError(w, r, err, failure)
		return
	}

	created, err := s.shows.Create(r.Context(), show)
	if err != nil {
		writeFormError(w, r, err, failure)
		return
	}

	writeJSON(w, http.StatusCreated, mutationResponse{
		Record:  created,
		Flashes: []Flash{success("Show was successfully listed!")},
	})
}

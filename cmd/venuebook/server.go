package main

import (
	"net/http"

	"venuebook/internal/app/artists"
	"venuebook/internal/app/shows"
	"venuebook/internal/app/venues"
	"venuebook/internal/httpapi"
	"venuebook/internal/store"
	"venuebook/shared/go/config"
	"venuebook/shared/go/middleware"
)

func newHTTPHandler(cfg *config.Config, dataStore *store.Store, policy store.DeletePolicy) http.Handler {
	venueSvc := venues.New(dataStore, policy, nil)
	artistSvc := artists.New(dataStore, policy, nil)

	// Shows check their venue and artist through the same store
	showSvc := shows.New(dataStore, dataStore)

	return middleware.Chain(
		httpapi.New(venueSvc, artistSvc, showSvc).Routes(),
		middleware.RequestLogging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)
}

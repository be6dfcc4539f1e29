package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"venuebook/internal/dbmigrate"
	"venuebook/internal/store"
	"venuebook/shared/go/config"
	"venuebook/shared/go/logging"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("venuebook stopped")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.SetGlobalLogger(logging.New(logging.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Service: "venuebook",
	}))

	policy, err := store.ParseDeletePolicy(cfg.App.DeletePolicy)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase(ctx, cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.App.MigrateOnStart {
		if err := dbmigrate.Up(ctx, db); err != nil {
			return err
		}
		log.Info().Msg("schema migrations applied")
	}

	dataStore := store.New(db)

	if cfg.App.SeedDemoData {
		if err := bootstrapDemoData(ctx, dataStore); err != nil {
			return err
		}
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           newHTTPHandler(cfg, dataStore, policy),
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Str("delete_policy", string(policy)).
			Msg("venuebook listening")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"venuebook/internal/dbmigrate"
	"venuebook/shared/go/config"
	"venuebook/shared/go/logging"
)

const usage = "usage: migrate [up|down|version]"

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if err := run(context.Background(), os.Args[1]); err != nil {
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("migration failed")
	}
}

func run(ctx context.Context, command string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.SetGlobalLogger(logging.New(logging.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Service: "migrate",
	}))

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	switch command {
	case "up":
		if err := dbmigrate.Up(ctx, db); err != nil {
			return err
		}
		log.Info().Msg("migrations applied")
	case "down":
		if err := dbmigrate.Down(ctx, db); err != nil {
			return err
		}
		log.Info().Msg("migrations rolled back")
	case "version":
		version, dirty, err := dbmigrate.Version(ctx, db)
		if err != nil {
			return err
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("schema version")
	default:
		return fmt.Errorf("unknown command %q (%s)", command, usage)
	}

	return nil
}

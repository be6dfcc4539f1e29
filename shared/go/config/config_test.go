package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/caarlos0/env/v11"
)

func parseMap(t *testing.T, environ map[string]string) (*Config, error) {
	t.Helper()
	return parse(env.Options{Environment: environ})
}

func TestParseDefaults(t *testing.T) {
	cfg, err := parseMap(t, map[string]string{"DATABASE_URL": "postgres://localhost/venuebook"})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Fatalf("unexpected addr %q", cfg.Server.Addr())
	}
	if cfg.App.DeletePolicy != "reject" || cfg.App.MigrateOnStart || cfg.App.SeedDemoData {
		t.Fatalf("unexpected app defaults: %#v", cfg.App)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging defaults: %#v", cfg.Logging)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Fatalf("unexpected CORS defaults: %#v", cfg.CORS.AllowedOrigins)
	}
}

func TestParseOverrides(t *testing.T) {
	cfg, err := parseMap(t, map[string]string{
		"DB_USER":              "fyyur",
		"DB_PASSWORD":          "s3cret",
		"DB_NAME":              "venuebook",
		"DB_HOST":              "db",
		"PORT":                 "9090",
		"CORS_ALLOWED_ORIGINS": " https://a.example , ,https://b.example",
		"LOG_LEVEL":            "DEBUG",
		"LOG_FORMAT":           "text",
		"DELETE_POLICY":        "Cascade",
		"MIGRATE_ON_START":     "true",
		"SEED_DEMO_DATA":       "1",
	})
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if got := cfg.Database.DSN(); got != "postgres://fyyur:s3cret@db:5432/venuebook?sslmode=disable" {
		t.Fatalf("unexpected DSN %q", got)
	}
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, []string{"https://a.example", "https://b.example"}) {
		t.Fatalf("unexpected origins: %#v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Server.Port != 9090 || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected config: %#v", cfg)
	}
	if cfg.App.DeletePolicy != "cascade" || !cfg.App.MigrateOnStart || !cfg.App.SeedDemoData {
		t.Fatalf("unexpected app config: %#v", cfg.App)
	}
}

func TestValidateAggregatesProblems(t *testing.T) {
	_, err := parseMap(t, map[string]string{
		"PORT":          "70000",
		"LOG_LEVEL":     "loud",
		"DELETE_POLICY": "nullify",
	})
	if err == nil {
		t.Fatalf("expected validation error")
	}

	for _, want := range []string{"DATABASE_URL", "PORT", "LOG_LEVEL", "DELETE_POLICY"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %s in error, got %v", want, err)
		}
	}
}

func TestParseRejectsMalformedPort(t *testing.T) {
	if _, err := parseMap(t, map[string]string{"DATABASE_URL": "postgres://x", "PORT": "eighty"}); err == nil {
		t.Fatalf("expected error for non-numeric PORT")
	}
}

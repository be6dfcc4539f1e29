package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
)

func TestEveryMigrationHasUpAndDown(t *testing.T) {
	names, err := fs.Glob(FS, "*.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(names) == 0 {
		t.Fatalf("no migrations embedded")
	}

	seen := map[string]int{}
	for _, name := range names {
		base := strings.TrimSuffix(strings.TrimSuffix(name, ".up.sql"), ".down.sql")
		seen[base]++
	}
	for base, count := range seen {
		if count != 2 {
			t.Fatalf("migration %s should have an up and a down file, found %d", base, count)
		}
	}
}

func TestSourceReadsMigrationsInOrder(t *testing.T) {
	src, err := iofs.New(FS, ".")
	if err != nil {
		t.Fatalf("iofs.New: %v", err)
	}
	defer src.Close()

	first, err := src.First()
	if err != nil {
		t.Fatalf("First: %v", err)
	}
	if first != 1 {
		t.Fatalf("expected first version 1, got %d", first)
	}

	next, err := src.Next(first)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if next != 2 {
		t.Fatalf("expected second version 2, got %d", next)
	}
}

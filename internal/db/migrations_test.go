package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunMigrations_RequiresURL(t *testing.T) {
	if err := RunMigrations("  ", "../../migrations/content", nil); !errors.Is(err, ErrMissingDatabaseURL) {
		t.Fatalf("expected ErrMissingDatabaseURL, got %v", err)
	}
}

func TestContentMigrations_ArePaired(t *testing.T) {
	ups, err := filepath.Glob("../../migrations/content/*.up.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(ups) == 0 {
		t.Fatalf("expected at least one migration")
	}
	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		if _, err := os.Stat(down); err != nil {
			t.Fatalf("missing down migration for %s", filepath.Base(up))
		}
	}
}

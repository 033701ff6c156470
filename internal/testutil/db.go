package testutil

import (
	"path/filepath"
	"testing"

	"github.com/codr1/chromapick/internal/db"
	"github.com/codr1/chromapick/internal/models"
)

// NewTestDB creates a temporary SQLite database with migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}

// FixedMatcher names every color the same.
type FixedMatcher string

func (m FixedMatcher) NearestName(string) (string, error) {
	return string(m), nil
}

// MustDerive derives a color with a fixed name, failing the test on error.
func MustDerive(t *testing.T, r, g, b int, name string) models.DerivedColor {
	t.Helper()

	derived, err := models.Derive(models.NewRGB(r, g, b), FixedMatcher(name))
	if err != nil {
		t.Fatalf("derive (%d,%d,%d): %v", r, g, b, err)
	}
	return derived
}

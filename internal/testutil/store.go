// Package testutil provides shared fixtures for tests: temporary document
// stores and a scripted completion service.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Veraticus/harmony/internal/storage"
)

// NewSQLiteStore creates a migrated SQLite store in a temporary directory.
// It is closed when the test finishes.
func NewSQLiteStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()

	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "harmony.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})
	return store
}

// NewFileStore creates a file store rooted in a temporary directory.
func NewFileStore(t *testing.T) *storage.FileStore {
	t.Helper()

	store, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create file store: %v", err)
	}
	return store
}

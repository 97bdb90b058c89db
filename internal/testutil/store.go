// Package testutil provides per-test stores, course fixtures and an HTTP
// client for driving the full router.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yigit/coursehub/internal/app/repositories"
	"github.com/yigit/coursehub/internal/db"
)

// NewSQLiteRepositories opens a fresh SQLite database under t.TempDir.
// Nothing written to it is visible to any other test.
func NewSQLiteRepositories(t *testing.T) *repositories.Repositories {
	t.Helper()

	path := filepath.Join(t.TempDir(), "courses.db")
	database, err := db.OpenSQLite(path)
	require.NoError(t, err, "open sqlite store")
	t.Cleanup(func() { _ = database.Close() })

	return repositories.NewSQLiteRepositories(database.DB)
}

// NewSQLiteRepository is NewSQLiteRepositories narrowed to the course store
func NewSQLiteRepository(t *testing.T) repositories.CourseRepository {
	t.Helper()
	return NewSQLiteRepositories(t).CourseRepository
}

// NewMemoryRepositories returns an empty in-memory store
func NewMemoryRepositories(t *testing.T) *repositories.Repositories {
	t.Helper()
	return repositories.NewMemoryRepositories()
}

// NewMemoryRepository is NewMemoryRepositories narrowed to the course store
func NewMemoryRepository(t *testing.T) repositories.CourseRepository {
	t.Helper()
	return NewMemoryRepositories(t).CourseRepository
}

// StoreCase names a store constructor for table-driven tests
type StoreCase struct {
	Name string
	New  func(t *testing.T) repositories.CourseRepository
}

// Stores lists every store that runs without external services
func Stores() []StoreCase {
	return []StoreCase{
		{Name: "sqlite", New: NewSQLiteRepository},
		{Name: "memory", New: NewMemoryRepository},
	}
}

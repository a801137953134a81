// package testing contains shared testing utilities
package testing

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/desertthunder/vofo/internal/models"
	"github.com/desertthunder/vofo/internal/shared"
)

// MockCatalog is a test double for [services.Catalog] with configurable
// results and failure injection.
type MockCatalog struct {
	SearchResults []models.Track
	ChartResults  []models.Track
	Err           error

	SearchCalls int
	ChartCalls  int
}

func (m *MockCatalog) Search(ctx context.Context, query string) ([]models.Track, error) {
	m.SearchCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.SearchResults, nil
}

func (m *MockCatalog) Charts(ctx context.Context) ([]models.Track, error) {
	m.ChartCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.ChartResults, nil
}

func (m *MockCatalog) Name() string { return "mock" }

// ErrUpstream simulates a network failure from a catalog provider.
var ErrUpstream = errors.New("upstream unreachable")

// NewTestDB opens an in-memory database with the schema applied.
// The connection is closed when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// Every pooled connection to ":memory:" is a distinct database, so the
	// pool must stay at a single connection.
	db.SetMaxOpenConns(1)

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

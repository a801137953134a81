package services

import (
	"context"

	"github.com/desertthunder/vofo/internal/models"
)

// TrendingLimit caps the number of tracks returned by Charts.
const TrendingLimit = 15

// Catalog defines the interface for music catalog providers.
type Catalog interface {
	// Search looks up tracks matching the query.
	Search(ctx context.Context, query string) ([]models.Track, error)

	// Charts retrieves the current trending tracks, at most [TrendingLimit].
	Charts(ctx context.Context) ([]models.Track, error)

	// Name returns the name of the provider (e.g., "ytmusic-proxy", "scraper")
	Name() string
}

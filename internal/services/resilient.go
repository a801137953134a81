package services

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/vofo/internal/models"
)

// fallbackTracks is served when the charts upstream is unreachable.
// A stale-but-familiar trending list beats an empty home screen.
var fallbackTracks = []models.Track{
	{ID: "kJQP7kiw5Fk", Title: "Despacito", Artist: "Luis Fonsi", Thumbnail: "https://i.ytimg.com/vi/kJQP7kiw5Fk/hqdefault.jpg"},
	{ID: "JGwWNGJdvx8", Title: "Shape of You", Artist: "Ed Sheeran", Thumbnail: "https://i.ytimg.com/vi/JGwWNGJdvx8/hqdefault.jpg"},
	{ID: "RgKAFK5djSk", Title: "See You Again", Artist: "Wiz Khalifa", Thumbnail: "https://i.ytimg.com/vi/RgKAFK5djSk/hqdefault.jpg"},
	{ID: "OPf0YbXqDm0", Title: "Uptown Funk", Artist: "Mark Ronson", Thumbnail: "https://i.ytimg.com/vi/OPf0YbXqDm0/hqdefault.jpg"},
	{ID: "09R8_2nJtjg", Title: "Sugar", Artist: "Maroon 5", Thumbnail: "https://i.ytimg.com/vi/09R8_2nJtjg/hqdefault.jpg"},
	{ID: "hT_nvWreIhg", Title: "Counting Stars", Artist: "OneRepublic", Thumbnail: "https://i.ytimg.com/vi/hT_nvWreIhg/hqdefault.jpg"},
	{ID: "YQHsXMglC9A", Title: "Hello", Artist: "Adele", Thumbnail: "https://i.ytimg.com/vi/YQHsXMglC9A/hqdefault.jpg"},
	{ID: "CevxZvSJLk8", Title: "Roar", Artist: "Katy Perry", Thumbnail: "https://i.ytimg.com/vi/CevxZvSJLk8/hqdefault.jpg"},
}

// Resilient wraps a [Catalog] so upstream failures never reach the HTTP
// surface: a failed search degrades to an empty list and failed charts
// degrade to the fallback list. Errors are logged and swallowed.
type Resilient struct {
	inner  Catalog
	logger *log.Logger
}

// NewResilient wraps the given catalog with best-effort degradation.
func NewResilient(inner Catalog, logger *log.Logger) *Resilient {
	return &Resilient{inner: inner, logger: logger}
}

// Name returns the wrapped provider's name.
func (r *Resilient) Name() string {
	return r.inner.Name()
}

// Search returns the wrapped provider's results, or an empty list on failure.
func (r *Resilient) Search(ctx context.Context, query string) ([]models.Track, error) {
	tracks, err := r.inner.Search(ctx, query)
	if err != nil {
		r.logger.Warn("search degraded to empty results", "provider", r.inner.Name(), "query", query, "err", err)
		return []models.Track{}, nil
	}
	if tracks == nil {
		tracks = []models.Track{}
	}
	return tracks, nil
}

// Charts returns the wrapped provider's chart, or the fallback list on failure.
func (r *Resilient) Charts(ctx context.Context) ([]models.Track, error) {
	tracks, err := r.inner.Charts(ctx)
	if err != nil {
		r.logger.Warn("charts degraded to fallback list", "provider", r.inner.Name(), "err", err)
		return fallbackTracks, nil
	}
	if len(tracks) == 0 {
		return fallbackTracks, nil
	}
	return tracks, nil
}

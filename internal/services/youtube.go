// YouTube Music catalog [Catalog] implementation
//
// Communicates with a ytmusic proxy server wrapping the ytmusicapi Python
// library. Search and charts responses are normalized to track records.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/desertthunder/vofo/internal/models"
)

const defaultYTBaseURL string = "http://localhost:8080"

// YouTubeImage represents an image/thumbnail from YouTube Music.
type YouTubeImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// YouTubeArtist represents an artist in YouTube Music responses.
type YouTubeArtist struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// YouTubeTrack represents a track/video in YouTube Music responses.
type YouTubeTrack struct {
	VideoID     string          `json:"videoId"`
	Title       string          `json:"title"`
	Artists     []YouTubeArtist `json:"artists"`
	Duration    string          `json:"duration"`
	DurationSec int             `json:"duration_seconds"`
	Thumbnails  []YouTubeImage  `json:"thumbnails"`
}

// YouTubeCatalog implements the Catalog interface for YouTube Music via proxy.
type YouTubeCatalog struct {
	baseURL    string
	country    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewYouTubeCatalog creates a new YouTube Music catalog instance.
// Outbound calls are rate limited to rps requests per second.
func NewYouTubeCatalog(baseURL, country string, rps float64) *YouTubeCatalog {
	if baseURL == "" {
		baseURL = defaultYTBaseURL
	}
	if country == "" {
		country = "IN"
	}
	if rps <= 0 {
		rps = 5.0
	}

	return &YouTubeCatalog{
		baseURL:    baseURL,
		country:    country,
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Name returns the provider name.
func (y *YouTubeCatalog) Name() string {
	return "ytmusic-proxy"
}

func (y *YouTubeCatalog) doRequest(ctx context.Context, endpoint string, result any) error {
	if err := y.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	apiURL := y.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Detail != "" {
			return fmt.Errorf("youtube music API error (status %d): %s", resp.StatusCode, errResp.Detail)
		}
		return fmt.Errorf("youtube music API error: status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Search looks up tracks matching the query.
//
// Calls GET /api/search?q={query}&filter=songs on the proxy.
func (y *YouTubeCatalog) Search(ctx context.Context, query string) ([]models.Track, error) {
	endpoint := fmt.Sprintf("/api/search?q=%s&filter=songs", url.QueryEscape(query))

	var results []YouTubeTrack
	if err := y.doRequest(ctx, endpoint, &results); err != nil {
		return nil, err
	}

	return normalizeYouTubeTracks(results), nil
}

// Charts retrieves the trending songs chart for the configured country.
//
// Calls GET /api/charts?country={country} on the proxy and trims to [TrendingLimit].
func (y *YouTubeCatalog) Charts(ctx context.Context) ([]models.Track, error) {
	endpoint := fmt.Sprintf("/api/charts?country=%s", url.QueryEscape(y.country))

	var chart struct {
		Songs struct {
			Items []YouTubeTrack `json:"items"`
		} `json:"songs"`
	}

	if err := y.doRequest(ctx, endpoint, &chart); err != nil {
		return nil, err
	}

	items := chart.Songs.Items
	if len(items) > TrendingLimit {
		items = items[:TrendingLimit]
	}

	return normalizeYouTubeTracks(items), nil
}

// normalizeYouTubeTracks converts proxy responses to track records, taking
// the first artist and the last (largest) thumbnail.
func normalizeYouTubeTracks(ytTracks []YouTubeTrack) []models.Track {
	tracks := make([]models.Track, 0, len(ytTracks))
	for _, ytt := range ytTracks {
		if ytt.VideoID == "" {
			continue
		}

		track := models.Track{
			ID:       ytt.VideoID,
			Title:    ytt.Title,
			Duration: ytt.DurationSec,
		}

		if len(ytt.Artists) > 0 {
			track.Artist = ytt.Artists[0].Name
		}
		if len(ytt.Thumbnails) > 0 {
			track.Thumbnail = ytt.Thumbnails[len(ytt.Thumbnails)-1].URL
		}

		tracks = append(tracks, track)
	}

	return tracks
}

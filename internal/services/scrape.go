// Scraping [Catalog] implementation
//
// Extracts track records from the public search results page. Each result
// is matched as one complete record rather than zipping independently
// matched field lists, so short or reordered matches cannot misalign a
// title with the wrong video id.
package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/desertthunder/vofo/internal/models"
)

const (
	defaultSearchURL = "https://www.youtube.com/results"
	thumbnailFormat  = "https://i.ytimg.com/vi/%s/hqdefault.jpg"

	// Placeholder values for fields missing from a matched record.
	unknownTitle  = "Unknown Title"
	unknownArtist = "N/A"
)

// recordMarker delimits one result record in the page's embedded JSON.
// The page is split on it so field extraction stays inside a single record
// and cannot bleed into the next one.
const recordMarker = `"videoRenderer":{`

var (
	videoIDPattern  = regexp.MustCompile(`^"videoId":"([a-zA-Z0-9_-]{11})"`)
	titlePattern    = regexp.MustCompile(`"title":\{"runs":\[\{"text":"((?:[^"\\]|\\.)*)"`)
	channelPattern  = regexp.MustCompile(`"ownerText":\{"runs":\[\{"text":"((?:[^"\\]|\\.)*)"`)
	durationPattern = regexp.MustCompile(`"lengthText":\{.*?"simpleText":"(\d+(?::\d{2})+)"`)
)

// ScrapeCatalog implements the Catalog interface by scraping a search page.
type ScrapeCatalog struct {
	searchURL  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewScrapeCatalog creates a new scraping catalog instance.
func NewScrapeCatalog(searchURL string, rps float64) *ScrapeCatalog {
	if searchURL == "" {
		searchURL = defaultSearchURL
	}
	if rps <= 0 {
		rps = 5.0
	}

	return &ScrapeCatalog{
		searchURL:  searchURL,
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Name returns the provider name.
func (s *ScrapeCatalog) Name() string {
	return "scraper"
}

// Search fetches the results page for the query and extracts track records.
func (s *ScrapeCatalog) Search(ctx context.Context, query string) ([]models.Track, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	pageURL := fmt.Sprintf("%s?search_query=%s", s.searchURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64)")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search page returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read page: %w", err)
	}

	return parseResults(string(body)), nil
}

// Charts searches for trending songs and trims to [TrendingLimit].
// The public page has no charts endpoint, so this reuses search.
func (s *ScrapeCatalog) Charts(ctx context.Context) ([]models.Track, error) {
	tracks, err := s.Search(ctx, "trending songs")
	if err != nil {
		return nil, err
	}

	if len(tracks) > TrendingLimit {
		tracks = tracks[:TrendingLimit]
	}

	return tracks, nil
}

// parseResults extracts complete per-item records from the page HTML.
// Each record is parsed in isolation, so a record missing its title keeps a
// placeholder instead of stealing the next record's title. Duplicate video
// ids (the page repeats renderer blocks) are dropped.
func parseResults(page string) []models.Track {
	blocks := strings.Split(page, recordMarker)
	if len(blocks) < 2 {
		return []models.Track{}
	}
	blocks = blocks[1:]

	seen := make(map[string]bool, len(blocks))
	tracks := make([]models.Track, 0, len(blocks))

	for _, block := range blocks {
		idMatch := videoIDPattern.FindStringSubmatch(block)
		if idMatch == nil {
			continue
		}

		id := idMatch[1]
		if seen[id] {
			continue
		}
		seen[id] = true

		title := unknownTitle
		if m := titlePattern.FindStringSubmatch(block); m != nil && m[1] != "" {
			title = unescapeJSON(m[1])
		}

		artist := unknownArtist
		if m := channelPattern.FindStringSubmatch(block); m != nil && m[1] != "" {
			artist = unescapeJSON(m[1])
		}

		duration := 0
		if m := durationPattern.FindStringSubmatch(block); m != nil {
			duration = parseDuration(m[1])
		}

		tracks = append(tracks, models.Track{
			ID:        id,
			Title:     title,
			Artist:    artist,
			Thumbnail: fmt.Sprintf(thumbnailFormat, id),
			Duration:  duration,
		})
	}

	return tracks
}

// parseDuration converts a "3:45" or "1:02:45" display length to seconds.
func parseDuration(s string) int {
	total := 0
	for _, part := range strings.Split(s, ":") {
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0
		}
		total = total*60 + n
	}
	return total
}

// unescapeJSON undoes the JSON string escapes present in scraped fields.
func unescapeJSON(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	r := strings.NewReplacer(`\"`, `"`, `\\`, `\`, `\/`, `/`, `\n`, " ", `\t`, " ")
	return r.Replace(s)
}

package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func sampleResult(id, title, channel string) string {
	return fmt.Sprintf(
		`"videoRenderer":{"videoId":"%s","thumbnail":{},"title":{"runs":[{"text":"%s"}]},"ownerText":{"runs":[{"text":"%s"}]}}`,
		id, title, channel,
	)
}

func TestParseResults(t *testing.T) {
	t.Run("extracts complete per-item records", func(t *testing.T) {
		page := sampleResult("dQw4w9WgXcQ", "Never Gonna Give You Up", "Rick Astley") +
			"," + sampleResult("kJQP7kiw5Fk", "Despacito", "Luis Fonsi")

		tracks := parseResults(page)
		if len(tracks) != 2 {
			t.Fatalf("expected 2 tracks, got %d", len(tracks))
		}

		if tracks[0].ID != "dQw4w9WgXcQ" || tracks[0].Title != "Never Gonna Give You Up" || tracks[0].Artist != "Rick Astley" {
			t.Errorf("unexpected first record: %+v", tracks[0])
		}
		if tracks[1].ID != "kJQP7kiw5Fk" || tracks[1].Title != "Despacito" {
			t.Errorf("unexpected second record: %+v", tracks[1])
		}
		if tracks[0].Thumbnail != "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg" {
			t.Errorf("unexpected thumbnail: %s", tracks[0].Thumbnail)
		}
	})

	t.Run("missing fields get placeholders, never another record's values", func(t *testing.T) {
		// A record with no title block followed by a complete record. Field
		// matching stays inside each record, so the bare id must not pick up
		// the next record's title.
		page := `"videoRenderer":{"videoId":"AAAAAAAAAA1"}` +
			"," + sampleResult("BBBBBBBBBB2", "Real Title", "Real Channel")

		tracks := parseResults(page)
		if len(tracks) != 2 {
			t.Fatalf("expected 2 tracks, got %d", len(tracks))
		}

		if tracks[0].Title != unknownTitle {
			t.Errorf("expected placeholder title, got %s", tracks[0].Title)
		}
		if tracks[0].Artist != unknownArtist {
			t.Errorf("expected placeholder artist, got %s", tracks[0].Artist)
		}
		if tracks[1].Title != "Real Title" {
			t.Errorf("expected second record intact, got %s", tracks[1].Title)
		}
	})

	t.Run("duplicate video ids are dropped", func(t *testing.T) {
		page := sampleResult("dQw4w9WgXcQ", "First", "One") +
			"," + sampleResult("dQw4w9WgXcQ", "Second", "Two")

		tracks := parseResults(page)
		if len(tracks) != 1 {
			t.Fatalf("expected 1 track, got %d", len(tracks))
		}
		if tracks[0].Title != "First" {
			t.Errorf("expected first occurrence kept, got %s", tracks[0].Title)
		}
	})

	t.Run("unescapes quoted titles", func(t *testing.T) {
		page := sampleResult("dQw4w9WgXcQ", `Song \"Live\"`, "Channel")

		tracks := parseResults(page)
		if len(tracks) != 1 {
			t.Fatalf("expected 1 track, got %d", len(tracks))
		}
		if tracks[0].Title != `Song "Live"` {
			t.Errorf("expected unescaped title, got %s", tracks[0].Title)
		}
	})

	t.Run("parses display durations to seconds", func(t *testing.T) {
		page := `"videoRenderer":{"videoId":"dQw4w9WgXcQ","lengthText":{"accessibility":{},"simpleText":"3:33"},"title":{"runs":[{"text":"Song"}]}}` +
			`,"videoRenderer":{"videoId":"kJQP7kiw5Fk","lengthText":{"simpleText":"1:02:45"},"title":{"runs":[{"text":"Mix"}]}}`

		tracks := parseResults(page)
		if len(tracks) != 2 {
			t.Fatalf("expected 2 tracks, got %d", len(tracks))
		}
		if tracks[0].Duration != 213 {
			t.Errorf("expected 213 seconds, got %d", tracks[0].Duration)
		}
		if tracks[1].Duration != 3765 {
			t.Errorf("expected 3765 seconds, got %d", tracks[1].Duration)
		}
	})

	t.Run("empty page yields empty list", func(t *testing.T) {
		if tracks := parseResults("<html></html>"); len(tracks) != 0 {
			t.Errorf("expected no tracks, got %d", len(tracks))
		}
	})
}

func TestScrapeCatalog(t *testing.T) {
	t.Run("Name", func(t *testing.T) {
		if c := NewScrapeCatalog("", 0); c.Name() != "scraper" {
			t.Errorf("expected name scraper, got %s", c.Name())
		}
	})

	t.Run("Search fetches and parses the results page", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("search_query"); got != "rick astley" {
				t.Errorf("expected search_query 'rick astley', got %q", got)
			}

			fmt.Fprint(w, "<html>"+sampleResult("dQw4w9WgXcQ", "Never Gonna Give You Up", "Rick Astley")+"</html>")
		}))
		defer server.Close()

		c := NewScrapeCatalog(server.URL, 100)

		tracks, err := c.Search(context.Background(), "rick astley")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(tracks) != 1 {
			t.Fatalf("expected 1 track, got %d", len(tracks))
		}
		if tracks[0].Artist != "Rick Astley" {
			t.Errorf("expected channel as artist, got %s", tracks[0].Artist)
		}
	})

	t.Run("non-200 status yields an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		c := NewScrapeCatalog(server.URL, 100)
		if _, err := c.Search(context.Background(), "anything"); err == nil {
			t.Fatal("expected error for non-200 response")
		}
	})

	t.Run("Charts trims to the trending limit", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			page := "<html>"
			for i := 0; i < 25; i++ {
				page += sampleResult(fmt.Sprintf("vid%08d", i), fmt.Sprintf("Song %d", i), "Channel") + ","
			}
			fmt.Fprint(w, page+"</html>")
		}))
		defer server.Close()

		c := NewScrapeCatalog(server.URL, 100)

		tracks, err := c.Charts(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(tracks) != TrendingLimit {
			t.Errorf("expected %d tracks, got %d", TrendingLimit, len(tracks))
		}
	})
}

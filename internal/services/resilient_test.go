package services

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/desertthunder/vofo/internal/models"
	"github.com/desertthunder/vofo/internal/shared"
)

func TestResilient(t *testing.T) {
	ctx := context.Background()
	logger := shared.NewLogger(io.Discard)
	tracks := []models.Track{{ID: "t1", Title: "Track", Artist: "Artist", Thumbnail: "u"}}

	t.Run("passes results through on success", func(t *testing.T) {
		inner := &countingCatalog{searchResults: tracks, chartResults: tracks}
		r := NewResilient(inner, logger)

		got, err := r.Search(ctx, "queen")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != 1 {
			t.Errorf("expected 1 track, got %d", len(got))
		}
	})

	t.Run("search failure degrades to empty list", func(t *testing.T) {
		inner := &countingCatalog{err: errors.New("connection refused")}
		r := NewResilient(inner, logger)

		got, err := r.Search(ctx, "queen")
		if err != nil {
			t.Fatalf("expected failure to be swallowed, got %v", err)
		}
		if got == nil {
			t.Fatal("expected non-nil empty slice")
		}
		if len(got) != 0 {
			t.Errorf("expected empty list, got %d tracks", len(got))
		}
	})

	t.Run("charts failure degrades to the fallback list", func(t *testing.T) {
		inner := &countingCatalog{err: errors.New("connection refused")}
		r := NewResilient(inner, logger)

		got, err := r.Charts(ctx)
		if err != nil {
			t.Fatalf("expected failure to be swallowed, got %v", err)
		}
		if len(got) != len(fallbackTracks) {
			t.Fatalf("expected fallback list, got %d tracks", len(got))
		}
		if got[0].Title != fallbackTracks[0].Title {
			t.Errorf("expected fallback content, got %s", got[0].Title)
		}
	})

	t.Run("empty charts also fall back", func(t *testing.T) {
		inner := &countingCatalog{chartResults: []models.Track{}}
		r := NewResilient(inner, logger)

		got, err := r.Charts(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(got) != len(fallbackTracks) {
			t.Errorf("expected fallback list for empty chart, got %d", len(got))
		}
	})

	t.Run("Name delegates to the wrapped provider", func(t *testing.T) {
		r := NewResilient(&countingCatalog{}, logger)
		if r.Name() != "counting" {
			t.Errorf("expected wrapped name, got %s", r.Name())
		}
	})
}

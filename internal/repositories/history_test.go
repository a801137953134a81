package repositories

import (
	"errors"
	"testing"

	"github.com/desertthunder/vofo/internal/models"
	"github.com/desertthunder/vofo/internal/shared"
	vofotesting "github.com/desertthunder/vofo/internal/testing"
)

func TestHistoryRepository(t *testing.T) {
	t.Run("search history", func(t *testing.T) {
		db := vofotesting.NewTestDB(t)
		users := NewUserRepository(db)
		history := NewHistoryRepository(db)
		user := newTestUser(t, users, "alice")

		t.Run("appends and returns newest first", func(t *testing.T) {
			for i, q := range []string{"first", "second", "third"} {
				entry := models.NewSearchEntry(user.ID(), q, i)
				if err := history.AddSearch(entry); err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
			}

			entries, err := history.RecentSearches(user.ID(), 2)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(entries) != 2 {
				t.Fatalf("expected 2 entries, got %d", len(entries))
			}
			if entries[0].Query() != "third" || entries[1].Query() != "second" {
				t.Errorf("expected newest first, got %s then %s", entries[0].Query(), entries[1].Query())
			}
			if entries[0].ResultCount() != 2 {
				t.Errorf("expected result count 2, got %d", entries[0].ResultCount())
			}
		})

		t.Run("rejects empty query", func(t *testing.T) {
			if err := history.AddSearch(models.NewSearchEntry(user.ID(), "", 0)); !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	})

	t.Run("play history", func(t *testing.T) {
		db := vofotesting.NewTestDB(t)
		users := NewUserRepository(db)
		history := NewHistoryRepository(db)
		user := newTestUser(t, users, "bob")

		t.Run("appends and returns newest first", func(t *testing.T) {
			for _, id := range []string{"p1", "p2"} {
				entry := models.NewPlayEntry(user.ID(), id, "Title "+id, "Artist")
				if err := history.AddPlay(entry); err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
			}

			entries, err := history.RecentPlays(user.ID(), 10)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(entries) != 2 {
				t.Fatalf("expected 2 entries, got %d", len(entries))
			}
			if entries[0].SongID() != "p2" {
				t.Errorf("expected newest play first, got %s", entries[0].SongID())
			}
		})

		t.Run("scoped to the user", func(t *testing.T) {
			other := newTestUser(t, users, "carol")
			entries, err := history.RecentPlays(other.ID(), 10)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(entries) != 0 {
				t.Errorf("expected no entries for other user, got %d", len(entries))
			}
		})
	})
}

package repositories

import (
	"errors"
	"testing"

	"github.com/desertthunder/vofo/internal/models"
	"github.com/desertthunder/vofo/internal/shared"
	vofotesting "github.com/desertthunder/vofo/internal/testing"
)

func newTestUser(t *testing.T, users *UserRepository, name string) *models.User {
	t.Helper()

	user := models.NewUser(name, "hash")
	if err := users.Create(user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func TestLikeRepository(t *testing.T) {
	t.Run("Toggle", func(t *testing.T) {
		db := vofotesting.NewTestDB(t)
		users := NewUserRepository(db)
		likes := NewLikeRepository(db)
		user := newTestUser(t, users, "alice")

		t.Run("first toggle likes, second unlikes", func(t *testing.T) {
			liked, err := likes.Toggle(models.NewLikedSong(user.ID(), "song-1", "Song One", "Artist", "https://thumb/1"))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !liked {
				t.Error("expected first toggle to like")
			}

			liked, err = likes.Toggle(models.NewLikedSong(user.ID(), "song-1", "Song One", "Artist", "https://thumb/1"))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if liked {
				t.Error("expected second toggle to unlike")
			}

			remaining, err := likes.ListByUser(user.ID())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(remaining) != 0 {
				t.Errorf("expected empty liked list after double toggle, got %d", len(remaining))
			}
		})

		t.Run("rejects missing ids", func(t *testing.T) {
			if _, err := likes.Toggle(models.NewLikedSong("", "song-1", "t", "a", "u")); !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
			if _, err := likes.Toggle(models.NewLikedSong(user.ID(), "", "t", "a", "u")); !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	})

	t.Run("ListByUser", func(t *testing.T) {
		db := vofotesting.NewTestDB(t)
		users := NewUserRepository(db)
		likes := NewLikeRepository(db)
		user := newTestUser(t, users, "bob")

		t.Run("single like keeps submitted metadata", func(t *testing.T) {
			liked, err := likes.Toggle(models.NewLikedSong(user.ID(), "abc123", "Bohemian Rhapsody", "Queen", "https://thumb/abc123"))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !liked {
				t.Fatal("expected toggle to like")
			}

			list, err := likes.ListByUser(user.ID())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(list) != 1 {
				t.Fatalf("expected exactly one like, got %d", len(list))
			}

			track := list[0].Track()
			if track.ID != "abc123" || track.Title != "Bohemian Rhapsody" || track.Artist != "Queen" || track.Thumbnail != "https://thumb/abc123" {
				t.Errorf("unexpected track metadata: %+v", track)
			}
		})

		t.Run("returns likes in insertion order", func(t *testing.T) {
			for _, id := range []string{"s1", "s2", "s3"} {
				if _, err := likes.Toggle(models.NewLikedSong(user.ID(), id, "Title "+id, "Artist", "https://thumb/"+id)); err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
			}

			list, err := likes.ListByUser(user.ID())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			// abc123 from the previous subtest comes first
			if len(list) != 4 {
				t.Fatalf("expected 4 likes, got %d", len(list))
			}

			wantOrder := []string{"abc123", "s1", "s2", "s3"}
			for i, want := range wantOrder {
				if list[i].SongID() != want {
					t.Errorf("position %d: expected %s, got %s", i, want, list[i].SongID())
				}
			}
		})

		t.Run("other users see nothing", func(t *testing.T) {
			other := newTestUser(t, users, "carol")
			list, err := likes.ListByUser(other.ID())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(list) != 0 {
				t.Errorf("expected empty list for other user, got %d", len(list))
			}
		})
	})
}

package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/vofo/internal/models"
	"github.com/desertthunder/vofo/internal/shared"
)

// LikeRepository persists the per-user set of liked songs.
//
// The set invariant (at most one row per user/song pair) is backed by a
// unique index, so concurrent toggles cannot produce duplicates.
type LikeRepository struct {
	db *sql.DB
}

// NewLikeRepository creates a new [LikeRepository] with the given database connection
func NewLikeRepository(db *sql.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Toggle inserts the like if absent and deletes it if present.
// Returns true when the song ended up liked, false when it was removed.
func (r *LikeRepository) Toggle(like *models.LikedSong) (bool, error) {
	if err := like.Validate(); err != nil {
		return false, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	result, err := r.db.Exec(
		"DELETE FROM liked_songs WHERE user_id = ? AND song_id = ?",
		like.UserID(), like.SongID(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete like: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows > 0 {
		return false, nil
	}

	if err := r.Create(like); err != nil {
		return false, err
	}

	return true, nil
}

// Create inserts a like row with a generated ID.
func (r *LikeRepository) Create(like *models.LikedSong) error {
	if err := like.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	id := shared.GenerateID()
	like.SetID(id)

	query := `
		INSERT INTO liked_songs (id, user_id, song_id, title, artist, thumbnail, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, id, like.UserID(), like.SongID(), like.Title(), like.Artist(), like.Thumbnail(), like.CreatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert like: %w", err)
	}

	return nil
}

// Get retrieves a like by ID.
func (r *LikeRepository) Get(id string) (*models.LikedSong, error) {
	query := `
		SELECT id, user_id, song_id, title, artist, thumbnail, created_at
		FROM liked_songs
		WHERE id = ?
	`

	like, err := scanLike(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("like not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query like: %w", err)
	}

	return like, nil
}

// Delete removes a like by ID.
func (r *LikeRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM liked_songs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("like not found: %s", id)
	}

	return nil
}

// List retrieves likes matching the given criteria in insertion order.
func (r *LikeRepository) List(criteria map[string]any) ([]*models.LikedSong, error) {
	query := `
		SELECT id, user_id, song_id, title, artist, thumbnail, created_at
		FROM liked_songs
		WHERE 1 = 1
	`

	args := []any{}

	if userID, ok := criteria["user_id"].(string); ok && userID != "" {
		query += " AND user_id = ?"
		args = append(args, userID)
	}

	query += " ORDER BY rowid ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query likes: %w", err)
	}
	defer rows.Close()

	var likes []*models.LikedSong
	for rows.Next() {
		like, err := scanLike(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan like: %w", err)
		}
		likes = append(likes, like)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return likes, nil
}

// ListByUser retrieves a user's liked songs in insertion order.
func (r *LikeRepository) ListByUser(userID string) ([]*models.LikedSong, error) {
	return r.List(map[string]any{"user_id": userID})
}

type scannable interface {
	Scan(dest ...any) error
}

func scanLike(row scannable) (*models.LikedSong, error) {
	var (
		id        string
		userID    string
		songID    string
		title     string
		artist    string
		thumbnail string
		createdAt time.Time
	)

	if err := row.Scan(&id, &userID, &songID, &title, &artist, &thumbnail, &createdAt); err != nil {
		return nil, err
	}

	like := models.NewLikedSong(userID, songID, title, artist, thumbnail)
	like.SetID(id)
	like.SetCreatedAt(createdAt)
	return like, nil
}

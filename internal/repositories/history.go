package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/vofo/internal/models"
	"github.com/desertthunder/vofo/internal/shared"
)

// HistoryRepository appends search and play history rows.
// Rows are never updated or deleted.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new [HistoryRepository] with the given database connection
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// AddSearch records a search query and how many results it returned.
func (r *HistoryRepository) AddSearch(entry *models.SearchEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	id := shared.GenerateID()
	entry.SetID(id)

	query := `
		INSERT INTO search_history (id, user_id, query, result_count, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, id, entry.UserID(), entry.Query(), entry.ResultCount(), entry.CreatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert search entry: %w", err)
	}

	return nil
}

// AddPlay records a played track.
func (r *HistoryRepository) AddPlay(entry *models.PlayEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	id := shared.GenerateID()
	entry.SetID(id)

	query := `
		INSERT INTO play_history (id, user_id, song_id, title, artist, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, id, entry.UserID(), entry.SongID(), entry.Title(), entry.Artist(), entry.CreatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert play entry: %w", err)
	}

	return nil
}

// RecentSearches retrieves a user's most recent searches, newest first.
func (r *HistoryRepository) RecentSearches(userID string, limit int) ([]*models.SearchEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, user_id, query, result_count, created_at
		FROM search_history
		WHERE user_id = ?
		ORDER BY rowid DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query search history: %w", err)
	}
	defer rows.Close()

	var entries []*models.SearchEntry
	for rows.Next() {
		var (
			id          string
			uid         string
			q           string
			resultCount int
			createdAt   time.Time
		)

		if err := rows.Scan(&id, &uid, &q, &resultCount, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan search entry: %w", err)
		}

		entry := models.NewSearchEntry(uid, q, resultCount)
		entry.SetID(id)
		entry.SetCreatedAt(createdAt)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}

// RecentPlays retrieves a user's most recent plays, newest first.
func (r *HistoryRepository) RecentPlays(userID string, limit int) ([]*models.PlayEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, user_id, song_id, title, artist, created_at
		FROM play_history
		WHERE user_id = ?
		ORDER BY rowid DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query play history: %w", err)
	}
	defer rows.Close()

	var entries []*models.PlayEntry
	for rows.Next() {
		var (
			id        string
			uid       string
			songID    string
			title     string
			artist    string
			createdAt time.Time
		)

		if err := rows.Scan(&id, &uid, &songID, &title, &artist, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan play entry: %w", err)
		}

		entry := models.NewPlayEntry(uid, songID, title, artist)
		entry.SetID(id)
		entry.SetCreatedAt(createdAt)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}

package models

import (
	"fmt"
	"time"
)

// SearchEntry is one append-only search history row.
type SearchEntry struct {
	id          string
	userID      string
	query       string
	resultCount int
	createdAt   time.Time
}

// NewSearchEntry creates a SearchEntry for the given user and query.
func NewSearchEntry(userID, query string, resultCount int) *SearchEntry {
	return &SearchEntry{
		userID:      userID,
		query:       query,
		resultCount: resultCount,
		createdAt:   time.Now(),
	}
}

func (s *SearchEntry) ID() string           { return s.id }
func (s *SearchEntry) UserID() string       { return s.userID }
func (s *SearchEntry) Query() string        { return s.query }
func (s *SearchEntry) ResultCount() int     { return s.resultCount }
func (s *SearchEntry) CreatedAt() time.Time { return s.createdAt }

func (s *SearchEntry) SetID(id string)          { s.id = id }
func (s *SearchEntry) SetCreatedAt(t time.Time) { s.createdAt = t }

func (s *SearchEntry) Validate() error {
	if s.userID == "" {
		return fmt.Errorf("user id is required")
	}
	if s.query == "" {
		return fmt.Errorf("query is required")
	}
	return nil
}

// PlayEntry is one append-only play history row.
type PlayEntry struct {
	id        string
	userID    string
	songID    string
	title     string
	artist    string
	createdAt time.Time
}

// NewPlayEntry creates a PlayEntry for the given user and track metadata.
func NewPlayEntry(userID, songID, title, artist string) *PlayEntry {
	return &PlayEntry{
		userID:    userID,
		songID:    songID,
		title:     title,
		artist:    artist,
		createdAt: time.Now(),
	}
}

func (p *PlayEntry) ID() string           { return p.id }
func (p *PlayEntry) UserID() string       { return p.userID }
func (p *PlayEntry) SongID() string       { return p.songID }
func (p *PlayEntry) Title() string        { return p.title }
func (p *PlayEntry) Artist() string       { return p.artist }
func (p *PlayEntry) CreatedAt() time.Time { return p.createdAt }

func (p *PlayEntry) SetID(id string)          { p.id = id }
func (p *PlayEntry) SetCreatedAt(t time.Time) { p.createdAt = t }

func (p *PlayEntry) Validate() error {
	if p.userID == "" {
		return fmt.Errorf("user id is required")
	}
	if p.songID == "" {
		return fmt.Errorf("song id is required")
	}
	return nil
}

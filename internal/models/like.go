package models

import (
	"fmt"
	"time"
)

// LikedSong is one entry in a user's liked list. Track metadata is stored
// redundantly so the list renders without a catalog lookup.
type LikedSong struct {
	id        string
	userID    string
	songID    string
	title     string
	artist    string
	thumbnail string
	createdAt time.Time
}

// NewLikedSong creates a LikedSong for the given user and track metadata.
func NewLikedSong(userID, songID, title, artist, thumbnail string) *LikedSong {
	return &LikedSong{
		userID:    userID,
		songID:    songID,
		title:     title,
		artist:    artist,
		thumbnail: thumbnail,
		createdAt: time.Now(),
	}
}

func (l *LikedSong) ID() string           { return l.id }
func (l *LikedSong) UserID() string       { return l.userID }
func (l *LikedSong) SongID() string       { return l.songID }
func (l *LikedSong) Title() string        { return l.title }
func (l *LikedSong) Artist() string       { return l.artist }
func (l *LikedSong) Thumbnail() string    { return l.thumbnail }
func (l *LikedSong) CreatedAt() time.Time { return l.createdAt }

func (l *LikedSong) SetID(id string)          { l.id = id }
func (l *LikedSong) SetCreatedAt(t time.Time) { l.createdAt = t }

// Validate checks that the like references a user and a track.
func (l *LikedSong) Validate() error {
	if l.userID == "" {
		return fmt.Errorf("user id is required")
	}
	if l.songID == "" {
		return fmt.Errorf("song id is required")
	}
	return nil
}

// Track returns the like's metadata as a transient track record.
func (l *LikedSong) Track() Track {
	return Track{
		ID:        l.songID,
		Title:     l.title,
		Artist:    l.artist,
		Thumbnail: l.thumbnail,
	}
}

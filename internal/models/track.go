package models

// Track is the normalized record returned by catalog providers.
// It is transient: only liked_songs and play_history keep copies of it.
type Track struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Thumbnail string `json:"thumbnail"`
	Duration  int    `json:"duration,omitempty"` // Duration in seconds
	URL       string `json:"url,omitempty"`
}

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/vofo/internal/auth"
	"github.com/desertthunder/vofo/internal/models"
	"github.com/desertthunder/vofo/internal/repositories"
	"github.com/desertthunder/vofo/internal/services"
	"github.com/desertthunder/vofo/internal/shared"
)

// API bundles the handlers for the JSON endpoints with their dependencies.
type API struct {
	logger  *log.Logger
	users   *repositories.UserRepository
	likes   *repositories.LikeRepository
	history *repositories.HistoryRepository
	catalog services.Catalog
	issuer  *auth.TokenIssuer
}

// APIOpts contains the dependencies for constructing an [API].
type APIOpts struct {
	Logger  *log.Logger
	Users   *repositories.UserRepository
	Likes   *repositories.LikeRepository
	History *repositories.HistoryRepository
	Catalog services.Catalog
	Issuer  *auth.TokenIssuer
}

// NewAPI creates an API handler set from the provided dependencies.
func NewAPI(opts APIOpts) *API {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &API{
		logger:  opts.Logger,
		users:   opts.Users,
		likes:   opts.Likes,
		history: opts.History,
		catalog: opts.Catalog,
		issuer:  opts.Issuer,
	}
}

// Mount registers every API route on the router. Auth-gated routes are
// wrapped with [RequireUser]; the auth middleware itself is composed on the
// router, not annotated per handler.
func (a *API) Mount(r Router) {
	r.Handle(http.MethodPost, "/api/register", http.HandlerFunc(a.Register))
	r.Handle(http.MethodPost, "/api/login", http.HandlerFunc(a.Login))
	r.Handle(http.MethodPost, "/api/like", http.HandlerFunc(a.Like))
	r.Handle(http.MethodGet, "/api/liked/{user_id}", http.HandlerFunc(a.Liked))
	r.Handle(http.MethodGet, "/api/trending", http.HandlerFunc(a.Trending))
	r.Handle(http.MethodGet, "/api/search", http.HandlerFunc(a.Search))
	r.Handle(http.MethodPost, "/api/play", RequireUser(a.Play))
	r.Handle(http.MethodGet, "/api/me", RequireUser(a.Me))
}

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a new account.
//
// POST /api/register {username, password} -> {"success": true}
func (a *API) Register(w http.ResponseWriter, r *http.Request) {
	var in credentialsReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}

	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" || in.Password == "" {
		errorJSON(w, http.StatusBadRequest, "username and password required")
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		a.logger.Error("failed to hash password", "err", err)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}

	user := models.NewUser(in.Username, hash)
	if err := a.users.Create(user); err != nil {
		switch {
		case errors.Is(err, shared.ErrUsernameTaken):
			errorJSON(w, http.StatusBadRequest, "username already exists")
		case errors.Is(err, shared.ErrInvalidInput):
			errorJSON(w, http.StatusBadRequest, "invalid input")
		default:
			a.logger.Error("failed to create user", "err", err)
			errorJSON(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Login verifies credentials and issues a bearer token.
//
// POST /api/login {username, password} -> {"success": true, user_id, username, token}
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var in credentialsReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}

	user, err := a.users.GetByUsername(strings.TrimSpace(in.Username))
	if err != nil {
		if errors.Is(err, shared.ErrUserNotFound) {
			errorJSON(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		a.logger.Error("failed to look up user", "err", err)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := auth.CheckPassword(in.Password, user.PasswordHash()); err != nil {
		errorJSON(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := a.issuer.Issue(user.ID(), user.Username())
	if err != nil {
		a.logger.Error("failed to issue token", "err", err)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}

	setAuthCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"user_id":  user.ID(),
		"username": user.Username(),
		"token":    token,
	})
}

type likeReq struct {
	UserID    string `json:"user_id"`
	SongID    string `json:"song_id"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Thumbnail string `json:"thumbnail"`
}

// Like toggles a song in the user's liked list.
//
// POST /api/like {user_id, song_id, title, artist, thumbnail} -> {"status": "liked"|"unliked"}
func (a *API) Like(w http.ResponseWriter, r *http.Request) {
	var in likeReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}

	like := models.NewLikedSong(in.UserID, in.SongID, in.Title, in.Artist, in.Thumbnail)
	liked, err := a.likes.Toggle(like)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidInput) {
			errorJSON(w, http.StatusBadRequest, "user_id and song_id required")
			return
		}
		a.logger.Error("failed to toggle like", "err", err)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}

	status := "unliked"
	if liked {
		status = "liked"
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

// Liked lists a user's liked songs as track records in insertion order.
//
// GET /api/liked/{user_id} -> [{id, title, artist, thumbnail}]
func (a *API) Liked(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	if userID == "" {
		errorJSON(w, http.StatusBadRequest, "user_id required")
		return
	}

	likes, err := a.likes.ListByUser(userID)
	if err != nil {
		a.logger.Error("failed to list likes", "err", err)
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return
	}

	tracks := make([]models.Track, 0, len(likes))
	for _, like := range likes {
		tracks = append(tracks, like.Track())
	}

	writeJSON(w, http.StatusOK, tracks)
}

// Trending returns the current trending tracks, at most 15.
// Upstream failures are degraded inside the catalog, never surfaced here.
//
// GET /api/trending -> [{id, title, artist, thumbnail}]
func (a *API) Trending(w http.ResponseWriter, r *http.Request) {
	tracks, err := a.catalog.Charts(r.Context())
	if err != nil {
		// Resilient catalogs do not error; a bare provider still degrades here.
		a.logger.Warn("charts failed", "err", err)
		tracks = []models.Track{}
	}

	writeJSON(w, http.StatusOK, tracks)
}

// Search looks up tracks matching the q parameter. When the request is
// authenticated the query is recorded in search history; history write
// failures are logged and swallowed.
//
// GET /api/search?q= -> [{id, title, artist, thumbnail}]
func (a *API) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		errorJSON(w, http.StatusBadRequest, "q required")
		return
	}

	tracks, err := a.catalog.Search(r.Context(), query)
	if err != nil {
		a.logger.Warn("search failed", "query", query, "err", err)
		tracks = []models.Track{}
	}

	if user, ok := CurrentUser(r); ok {
		entry := models.NewSearchEntry(user.ID(), query, len(tracks))
		if err := a.history.AddSearch(entry); err != nil {
			a.logger.Warn("failed to record search history", "err", err)
		}
	}

	writeJSON(w, http.StatusOK, tracks)
}

type playReq struct {
	SongID string `json:"song_id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// Play records a played track for the authenticated user.
//
// POST /api/play {song_id, title, artist} -> {"success": true}
func (a *API) Play(w http.ResponseWriter, r *http.Request) {
	user, _ := CurrentUser(r)

	var in playReq
	if err := decodeJSON(r, &in); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid json")
		return
	}

	if in.SongID == "" {
		errorJSON(w, http.StatusBadRequest, "song_id required")
		return
	}

	entry := models.NewPlayEntry(user.ID(), in.SongID, in.Title, in.Artist)
	if err := a.history.AddPlay(entry); err != nil {
		a.logger.Warn("failed to record play history", "err", err)
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Me returns the authenticated user's profile with recent history.
//
// GET /api/me -> {user_id, username, recent_searches, recent_plays}
func (a *API) Me(w http.ResponseWriter, r *http.Request) {
	user, _ := CurrentUser(r)

	searches, err := a.history.RecentSearches(user.ID(), 10)
	if err != nil {
		a.logger.Warn("failed to load search history", "err", err)
	}

	plays, err := a.history.RecentPlays(user.ID(), 10)
	if err != nil {
		a.logger.Warn("failed to load play history", "err", err)
	}

	recentSearches := make([]map[string]any, 0, len(searches))
	for _, s := range searches {
		recentSearches = append(recentSearches, map[string]any{
			"query":        s.Query(),
			"result_count": s.ResultCount(),
		})
	}

	recentPlays := make([]map[string]any, 0, len(plays))
	for _, p := range plays {
		recentPlays = append(recentPlays, map[string]any{
			"id":     p.SongID(),
			"title":  p.Title(),
			"artist": p.Artist(),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":         user.ID(),
		"username":        user.Username(),
		"recent_searches": recentSearches,
		"recent_plays":    recentPlays,
	})
}

// decodeJSON parses the request body into v.
func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorJSON writes a JSON error body with the given status.
func errorJSON(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// setAuthCookie stores the bearer token in the fallback session cookie.
func setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/vofo/internal/auth"
	"github.com/desertthunder/vofo/internal/models"
	"github.com/desertthunder/vofo/internal/repositories"
)

// AuthCookieName is the fallback session cookie checked when no
// Authorization header is present.
const AuthCookieName = "vofo_auth"

type contextKey string

const userContextKey contextKey = "vofo.user"

// Logging returns middleware that logs each request's method, path, and duration.
func Logging(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
		})
	}
}

// CORS returns middleware that allows cross-origin requests from any origin.
// The front end runs inside mobile webviews, so the policy is permissive.
func CORS() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, HEAD, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Authenticate returns middleware that resolves the request's bearer token
// to a user and stores it in the request context. Requests without a valid
// token pass through unauthenticated; handlers that need the user call
// [CurrentUser] or are wrapped with [RequireUser].
//
// The token is read from the Authorization header, falling back to the
// session cookie.
func Authenticate(issuer *auth.TokenIssuer, users *repositories.UserRepository) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := issuer.Validate(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			// A valid signature for a deleted account is still unauthenticated.
			user, err := users.Get(claims.UserID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser wraps a handler so it only runs for authenticated requests,
// rejecting everything else with 401. The reason a token failed is never
// distinguished to the caller.
func RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			errorJSON(w, http.StatusUnauthorized, "unauthenticated")
			return
		}
		next(w, r)
	}
}

// CurrentUser returns the authenticated user stored by [Authenticate].
func CurrentUser(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(userContextKey).(*models.User)
	return user, ok
}

// bearerToken extracts the token from the Authorization header or the
// fallback session cookie. Returns "" when neither is present.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}

	if c, err := r.Cookie(AuthCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	return ""
}

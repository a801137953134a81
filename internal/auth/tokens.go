package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/desertthunder/vofo/internal/shared"
)

// Claims are the JWT claims bound into each bearer token.
type Claims struct {
	UserID   string `json:"uid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenIssuer creates and validates HS256-signed bearer tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a [TokenIssuer] from the auth configuration.
// Returns an error when the signing secret is empty.
func NewTokenIssuer(cfg shared.AuthConfig) (*TokenIssuer, error) {
	if cfg.Secret == "" {
		return nil, shared.ErrMissingSecret
	}

	ttl := time.Duration(cfg.TTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 720 * time.Hour
	}

	return &TokenIssuer{secret: []byte(cfg.Secret), ttl: ttl}, nil
}

// Issue signs a token binding the user's id and username.
func (t *TokenIssuer) Issue(userID, username string) (string, error) {
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Validate checks a token's signature and expiry and returns its claims.
// Malformed, tampered and expired tokens all map to [shared.ErrNotAuthenticated];
// the caller never learns which check failed.
func (t *TokenIssuer) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, shared.ErrNotAuthenticated
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, shared.ErrNotAuthenticated
	}

	return claims, nil
}

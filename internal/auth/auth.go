// package auth implements password hashing and bearer token issuance.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/desertthunder/vofo/internal/shared"
)

// HashPassword returns the bcrypt hash of a clear-text password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a clear-text password to a stored bcrypt hash.
// Returns [shared.ErrInvalidCredentials] on mismatch.
func CheckPassword(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return shared.ErrInvalidCredentials
	}
	return nil
}

package models

import (
	"fmt"
	"time"
)

// User is a registered account. The password is held only as a bcrypt hash;
// the clear text is never stored.
type User struct {
	id           string
	username     string
	passwordHash string
	email        string
	preferences  string
	createdAt    time.Time
}

// NewUser creates a User with the given username and password hash.
func NewUser(username, passwordHash string) *User {
	return &User{
		username:     username,
		passwordHash: passwordHash,
		createdAt:    time.Now(),
	}
}

func (u *User) ID() string           { return u.id }
func (u *User) Username() string     { return u.username }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Email() string        { return u.email }
func (u *User) Preferences() string  { return u.preferences }
func (u *User) CreatedAt() time.Time { return u.createdAt }

func (u *User) SetID(id string)          { u.id = id }
func (u *User) SetEmail(email string)    { u.email = email }
func (u *User) SetPreferences(p string)  { u.preferences = p }
func (u *User) SetCreatedAt(t time.Time) { u.createdAt = t }

// Validate checks that the account has a username and a password hash.
func (u *User) Validate() error {
	if u.username == "" {
		return fmt.Errorf("username is required")
	}
	if u.passwordHash == "" {
		return fmt.Errorf("password hash is required")
	}
	return nil
}

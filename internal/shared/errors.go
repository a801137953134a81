package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
	ErrMissingSecret = fmt.Errorf("missing signing secret")

	// Authentication errors
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrNotAuthenticated   = fmt.Errorf("not authenticated")
	ErrTokenExpired       = fmt.Errorf("token expired")

	// Account errors
	ErrUsernameTaken = fmt.Errorf("username already exists")
	ErrUserNotFound  = fmt.Errorf("user not found")

	// Catalog and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrTrackNotFound      = fmt.Errorf("track not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
)

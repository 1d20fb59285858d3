package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("expired token")

	// Validation errors
	ErrInvalidInput  = errors.New("invalid input")
	ErrEmptyBody     = errors.New("message body must not be empty")
	ErrSelfMessage   = errors.New("sender and receiver must differ")
	ErrMissingUserID = errors.New("user id is required")
)

// IsValidation reports whether err belongs to the 400 class.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyBody) ||
		errors.Is(err, ErrSelfMessage) ||
		errors.Is(err, ErrMissingUserID)
}

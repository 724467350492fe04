package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUsernameTaken occurs when sign-up hits the username unique index.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidToken occurs when a token fails signature or claims checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired occurs when a token's expiry claim has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrValidation indicates a malformed or incomplete request body.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized indicates a missing or unusable access token.
	ErrUnauthorized = errors.New("unauthorized")
)

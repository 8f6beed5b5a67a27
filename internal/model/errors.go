package model

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateUsername is returned when creating a user with a
	// username that is already taken.
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrInvalidCredentials is returned on any failed credential check.
	// It is deliberately identical for unknown usernames and wrong
	// passwords so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSessionExpired is returned for a session that existed but whose
	// expiry has passed.
	ErrSessionExpired = errors.New("session expired")
	// ErrUnauthenticated is returned when a presented token does not
	// resolve to an active session.
	ErrUnauthenticated = errors.New("unauthenticated")
)

package model

import (
	"context"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	// AddToGroup and RemoveFromGroup are idempotent: adding a group the
	// user already has, or removing one they don't, is a no-op.
	AddToGroup(ctx context.Context, id uuid.UUID, group string) error
	RemoveFromGroup(ctx context.Context, id uuid.UUID, group string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash, salt string) error
	// Delete removes the user and every session owned by the user in a
	// single transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}

// User represents a stored user with authentication material.
// Hash and Salt are 64-character hex strings and are always set together;
// the plaintext password is discarded after derivation.
type User struct {
	ID       uuid.UUID
	Username string
	Hash     string
	Salt     string
	Groups   []string
}

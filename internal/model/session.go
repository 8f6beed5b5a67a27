package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionStore defines persistence operations for sessions.
type SessionStore interface {
	Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (Session, error)
	// GetByToken returns ErrNotFound for a token that never existed and
	// ErrSessionExpired for one that exists but has lapsed. An expired
	// session found this way is reaped as part of the call.
	GetByToken(ctx context.Context, token string) (Session, error)
	// Renew resets the expiry to now+extendBy. Expired or revoked sessions
	// are never resurrected; renewing one returns ErrNotFound.
	Renew(ctx context.Context, id uuid.UUID, extendBy time.Duration) (Session, error)
	// Revoke returns ErrNotFound when the session does not exist. Callers
	// that want idempotent logout semantics get them at the service layer.
	Revoke(ctx context.Context, id uuid.UUID) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}

// Session is a persisted bearer session bound to one user.
// Token is the opaque credential presented by clients; it is distinct from
// ID so the token can be rotated without changing the record's identity.
// Expiry is stored as epoch seconds.
type Session struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Token  string
	Expiry int64
}

// ExpiresAt returns the expiry as a wall-clock time.
func (s Session) ExpiresAt() time.Time {
	return time.Unix(s.Expiry, 0)
}

// Expired reports whether the session has lapsed as of now.
func (s Session) Expired(now time.Time) bool {
	return s.Expiry <= now.Unix()
}

package postgres

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sessionforge/authcore/internal/model"
)

// tokenBytes hex-encodes to a 64-character bearer token (256 bits of
// entropy).
const tokenBytes = 32

var _ model.SessionStore = (*SessionRepository)(nil)

type SessionRepository struct {
	db  *Connection
	now func() time.Time
}

func NewSessionRepository(db *Connection) *SessionRepository {
	return &SessionRepository{
		db:  db,
		now: time.Now,
	}
}

func (r *SessionRepository) Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (model.Session, error) {
	token, err := newToken()
	if err != nil {
		return model.Session{}, err
	}

	session := model.Session{
		ID:     uuid.New(),
		UserID: userID,
		Token:  token,
		Expiry: r.now().Add(ttl).Unix(),
	}

	query := `INSERT INTO sessions (id, user_id, token, expiry)
			  VALUES ($1, $2, $3, $4)`

	_, err = r.db.Exec(ctx, query, session.ID, session.UserID, session.Token, session.Expiry)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.Session{}, model.ErrNotFound
		}
		return model.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// GetByToken resolves a bearer token. An expired session is deleted under
// the same row lock that a concurrent Renew would take, so exactly one of
// the two outcomes wins.
func (r *SessionRepository) GetByToken(ctx context.Context, token string) (model.Session, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var session model.Session
	query := `SELECT id, user_id, token, expiry FROM sessions WHERE token = $1 FOR UPDATE`

	err = tx.QueryRow(ctx, query, token).Scan(
		&session.ID, &session.UserID, &session.Token, &session.Expiry,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Session{}, model.ErrNotFound
		}
		return model.Session{}, fmt.Errorf("failed to get session by token: %w", err)
	}

	if session.Expired(r.now()) {
		if _, err := tx.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, session.ID); err != nil {
			return model.Session{}, fmt.Errorf("failed to reap expired session: %w", err)
		}
		if err := tx.Commit(ctx); err != nil {
			return model.Session{}, fmt.Errorf("failed to commit session reap: %w", err)
		}
		return model.Session{}, model.ErrSessionExpired
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Session{}, fmt.Errorf("failed to commit session lookup: %w", err)
	}

	return session, nil
}

// Renew resets the expiry to now+extendBy. The expiry guard in the WHERE
// clause keeps an already-lapsed session from being resurrected.
func (r *SessionRepository) Renew(ctx context.Context, id uuid.UUID, extendBy time.Duration) (model.Session, error) {
	now := r.now()
	query := `UPDATE sessions SET expiry = $2
			  WHERE id = $1 AND expiry > $3
			  RETURNING id, user_id, token, expiry`

	var session model.Session
	err := r.db.QueryRow(ctx, query, id, now.Add(extendBy).Unix(), now.Unix()).Scan(
		&session.ID, &session.UserID, &session.Token, &session.Expiry,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Session{}, model.ErrNotFound
		}
		return model.Session{}, fmt.Errorf("failed to renew session: %w", err)
	}

	return session, nil
}

// Revoke deletes the session. Revoking a session that does not exist
// returns ErrNotFound; Auth.Logout translates that into success.
func (r *SessionRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *SessionRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to revoke sessions for user: %w", err)
	}

	return nil
}

// SweepExpired deletes every session whose expiry has passed as of now.
// Sessions renewed by a concurrent transaction no longer match the
// predicate and survive.
func (r *SessionRepository) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE expiry <= $1`, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired sessions: %w", err)
	}

	return ct.RowsAffected(), nil
}

func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sessionforge/authcore/internal/kdf"
	"github.com/sessionforge/authcore/internal/logger"
	"github.com/sessionforge/authcore/internal/model"
)

// Auth orchestrates session issuance, validation and teardown on top of
// the Verifier and the two stores. Session identity is always passed
// explicitly; there is no ambient "current session".
type Auth struct {
	verifier *Verifier
	users    model.UserStore
	sessions model.SessionStore
	kdf      model.KDF
	logger   *logger.Logger
	now      func() time.Time
}

func NewAuth(
	verifier *Verifier,
	users model.UserStore,
	sessions model.SessionStore,
	k model.KDF,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		verifier: verifier,
		users:    users,
		sessions: sessions,
		kdf:      k,
		logger:   logger,
		now:      time.Now,
	}
}

// Login verifies credentials and issues a session valid for ttl. Both
// verifier failure modes surface as the single ErrInvalidCredentials.
func (a *Auth) Login(ctx context.Context, username, password string, ttl time.Duration) (model.Session, error) {
	a.logger.Debug("Auth service: login attempt",
		"username", username)

	userID, err := a.verifier.Verify(ctx, username, password)
	if errors.Is(err, model.ErrInvalidCredentials) {
		a.logger.Info("Auth service: login rejected",
			"username", username)
		return model.Session{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to verify credentials: %w", err)
	}

	session, err := a.sessions.Create(ctx, userID, ttl)
	if err != nil {
		a.logger.Error("Auth service: failed to create session",
			"user_id", userID,
			"error", err.Error())
		return model.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	a.logger.Info("Auth service: user logged in",
		"user_id", userID,
		"session_id", session.ID)

	return session, nil
}

// Logout revokes the session behind token. Logging out of a session that
// does not exist, or has already lapsed, is success from the caller's
// point of view.
func (a *Auth) Logout(ctx context.Context, token string) error {
	session, err := a.sessions.GetByToken(ctx, token)
	if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrSessionExpired) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get session by token: %w", err)
	}

	if err := a.sessions.Revoke(ctx, session.ID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	a.logger.Info("Auth service: user logged out",
		"user_id", session.UserID,
		"session_id", session.ID)

	return nil
}

// Authorize resolves a bearer token to the owning user and their groups.
// Missing, expired and revoked sessions all yield ErrUnauthenticated.
func (a *Auth) Authorize(ctx context.Context, token string) (uuid.UUID, []string, error) {
	session, err := a.sessions.GetByToken(ctx, token)
	if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrSessionExpired) {
		return uuid.Nil, nil, model.ErrUnauthenticated
	}
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("failed to get session by token: %w", err)
	}

	user, err := a.users.GetByID(ctx, session.UserID)
	if errors.Is(err, model.ErrNotFound) {
		// The session outlived its user; treat it like any other dead
		// session.
		return uuid.Nil, nil, model.ErrUnauthenticated
	}
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user.ID, user.Groups, nil
}

// Renew extends the session behind token by extendBy from now. A session
// that has already lapsed cannot be renewed.
func (a *Auth) Renew(ctx context.Context, token string, extendBy time.Duration) (model.Session, error) {
	session, err := a.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrSessionExpired) {
			return model.Session{}, err
		}
		return model.Session{}, fmt.Errorf("failed to get session by token: %w", err)
	}

	renewed, err := a.sessions.Renew(ctx, session.ID, extendBy)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Session{}, err
		}
		return model.Session{}, fmt.Errorf("failed to renew session: %w", err)
	}

	return renewed, nil
}

// ChangePassword verifies the old password, derives new hash material from
// a fresh salt, and revokes every session the user holds.
func (a *Auth) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to get user by id: %w", err)
	}

	if !kdf.Equal(a.kdf.Derive(oldPassword, user.Salt), user.Hash) {
		a.logger.Info("Auth service: password change rejected",
			"user_id", userID)
		return model.ErrInvalidCredentials
	}

	salt, err := kdf.NewSalt()
	if err != nil {
		return err
	}

	if err := a.users.UpdatePassword(ctx, userID, a.kdf.Derive(newPassword, salt), salt); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := a.sessions.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}

	a.logger.Info("Auth service: password changed",
		"user_id", userID)

	return nil
}

// SweepExpired deletes every session that has lapsed as of now.
func (a *Auth) SweepExpired(ctx context.Context) (int64, error) {
	count, err := a.sessions.SweepExpired(ctx, a.now())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired sessions: %w", err)
	}

	return count, nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sessionforge/authcore/internal/kdf"
	"github.com/sessionforge/authcore/internal/logger"
	"github.com/sessionforge/authcore/internal/model"
)

// Verifier checks a username/password pair against stored credentials.
// Every failure is ErrInvalidCredentials: the error and, as closely as
// possible, the timing are identical whether the username is unknown or
// the password is wrong.
type Verifier struct {
	users  model.UserStore
	kdf    model.KDF
	logger *logger.Logger

	// Decoy material derived once at construction. The unknown-username
	// path derives and compares against it so that path pays for the same
	// KDF work as a real verification.
	decoySalt string
	decoyHash string
}

func NewVerifier(users model.UserStore, k model.KDF, logger *logger.Logger) (*Verifier, error) {
	decoySalt, err := kdf.NewSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to generate decoy salt: %w", err)
	}

	decoyPassword, err := kdf.NewSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to generate decoy password: %w", err)
	}

	return &Verifier{
		users:     users,
		kdf:       k,
		logger:    logger,
		decoySalt: decoySalt,
		decoyHash: k.Derive(decoyPassword, decoySalt),
	}, nil
}

// Verify returns the user's id when the password matches. Storage failures
// propagate wrapped; every credential failure is ErrInvalidCredentials.
func (v *Verifier) Verify(ctx context.Context, username, password string) (uuid.UUID, error) {
	user, err := v.users.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		// Burn a derivation so an unknown username costs the same as a
		// wrong password. The decoy hash never matches a derived value
		// for any client-supplied password.
		kdf.Equal(v.kdf.Derive(password, v.decoySalt), v.decoyHash)
		return uuid.Nil, model.ErrInvalidCredentials
	}
	if err != nil {
		v.logger.Error("Verifier: failed to get user by username",
			"error", err.Error())
		return uuid.Nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	if !kdf.Equal(v.kdf.Derive(password, user.Salt), user.Hash) {
		return uuid.Nil, model.ErrInvalidCredentials
	}

	return user.ID, nil
}

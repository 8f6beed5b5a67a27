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

// Users owns the user lifecycle: registration (where the plaintext password
// is turned into hash material and discarded), lookups, group membership
// and deletion.
type Users struct {
	store  model.UserStore
	kdf    model.KDF
	logger *logger.Logger
}

func NewUsers(store model.UserStore, k model.KDF, logger *logger.Logger) *Users {
	return &Users{
		store:  store,
		kdf:    k,
		logger: logger,
	}
}

// Create registers a user. A fresh random salt is generated, the hash is
// derived from it, and the plaintext password never leaves this call.
// Returns ErrDuplicateUsername when the username is taken.
func (s *Users) Create(ctx context.Context, username, password string, groups ...string) (model.User, error) {
	s.logger.Debug("Users service: creating user",
		"username", username)

	salt, err := kdf.NewSalt()
	if err != nil {
		return model.User{}, err
	}

	user := model.User{
		ID:       uuid.New(),
		Username: username,
		Hash:     s.kdf.Derive(password, salt),
		Salt:     salt,
		Groups:   groups,
	}

	created, err := s.store.Create(ctx, user)
	if errors.Is(err, model.ErrDuplicateUsername) {
		s.logger.Info("Users service: username already taken",
			"username", username)
		return model.User{}, err
	}
	if err != nil {
		s.logger.Error("Users service: failed to create user",
			"username", username,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("Users service: user created",
		"username", username,
		"user_id", created.ID)

	return created, nil
}

func (s *Users) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Users) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return s.store.GetByUsername(ctx, username)
}

func (s *Users) AddToGroup(ctx context.Context, id uuid.UUID, group string) error {
	if err := s.store.AddToGroup(ctx, id, group); err != nil {
		return err
	}

	s.logger.Debug("Users service: user added to group",
		"user_id", id,
		"group", group)

	return nil
}

func (s *Users) RemoveFromGroup(ctx context.Context, id uuid.UUID, group string) error {
	if err := s.store.RemoveFromGroup(ctx, id, group); err != nil {
		return err
	}

	s.logger.Debug("Users service: user removed from group",
		"user_id", id,
		"group", group)

	return nil
}

// Delete removes the user; the store deletes the user's sessions in the
// same transaction.
func (s *Users) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return err
		}
		s.logger.Error("Users service: failed to delete user",
			"user_id", id,
			"error", err.Error())
		return err
	}

	s.logger.Info("Users service: user deleted",
		"user_id", id)

	return nil
}

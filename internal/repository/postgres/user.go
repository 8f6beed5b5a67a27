package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sessionforge/authcore/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, username, hash, salt, groups)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, username, hash, salt, COALESCE(groups, '{}')`

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Groups == nil {
		user.Groups = []string{}
	}

	var savedUser model.User
	err := r.db.QueryRow(ctx, query,
		user.ID, user.Username, user.Hash, user.Salt, user.Groups,
	).Scan(
		&savedUser.ID, &savedUser.Username, &savedUser.Hash, &savedUser.Salt, &savedUser.Groups,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, model.ErrDuplicateUsername
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return savedUser, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	var user model.User
	query := `SELECT id, username, hash, salt, COALESCE(groups, '{}')
			  FROM users WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Username, &user.Hash, &user.Salt, &user.Groups,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	var user model.User
	query := `SELECT id, username, hash, salt, COALESCE(groups, '{}')
			  FROM users WHERE username = $1`

	err := r.db.QueryRow(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.Hash, &user.Salt, &user.Groups,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

// AddToGroup is a single-statement array update so concurrent calls for the
// same group still leave exactly one copy in the set.
func (r *UserRepository) AddToGroup(ctx context.Context, id uuid.UUID, group string) error {
	query := `UPDATE users
			  SET groups = CASE WHEN $2 = ANY(groups) THEN groups
			                    ELSE array_append(COALESCE(groups, '{}'), $2) END
			  WHERE id = $1`

	ct, err := r.db.Exec(ctx, query, id, group)
	if err != nil {
		return fmt.Errorf("failed to add user to group: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

// RemoveFromGroup is idempotent: removing a group the user is not in is a
// no-op.
func (r *UserRepository) RemoveFromGroup(ctx context.Context, id uuid.UUID, group string) error {
	query := `UPDATE users SET groups = array_remove(groups, $2) WHERE id = $1`

	ct, err := r.db.Exec(ctx, query, id, group)
	if err != nil {
		return fmt.Errorf("failed to remove user from group: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash, salt string) error {
	query := `UPDATE users SET hash = $2, salt = $3 WHERE id = $1`

	ct, err := r.db.Exec(ctx, query, id, hash, salt)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

// Delete removes the user and all of the user's sessions in one
// transaction: either both are gone afterwards or neither is.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete user sessions: %w", err)
	}

	ct, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit user deletion: %w", err)
	}

	return nil
}

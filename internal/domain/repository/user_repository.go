package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"library_api/internal/common"
	"library_api/internal/domain/model"
)

type UserRepository interface {
	// Create inserts the user. A case-insensitive username collision yields
	// ErrUsernameTaken; the unique index on lower(username) is the actual
	// guarantee, so concurrent registrations cannot both succeed.
	Create(ctx context.Context, user *model.User) error
	// FindByUsername looks up a user case-insensitively.
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, username, password_hash, password_salt, created_at)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Username, user.PasswordHash, user.PasswordSalt, user.CreatedAt)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return common.ErrUsernameTaken
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	// lower(username) is backed by a unique expression index, so this is an
	// index lookup rather than a scan.
	query := `SELECT id, username, password_hash, password_salt, created_at
	          FROM users WHERE lower(username) = lower($1)`
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.PasswordSalt, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByUsername: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT id, username, password_hash, password_salt, created_at
	          FROM users WHERE id = $1`
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.PasswordSalt, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByID: %w", err)
	}
	return user, nil
}

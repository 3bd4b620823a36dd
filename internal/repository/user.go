package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"realestate-agent/internal/model"
)

// CreateUser inserts a user. A duplicate email yields ErrConflict.
func (r *PostgresRepository) CreateUser(ctx context.Context, u *model.User) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO users (email, name, hashed_password, is_oauth)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, u.Email, u.Name, u.HashedPassword, u.IsOAuth).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByEmail looks a user up by email
func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.GetContext(ctx, &u, `
		SELECT id, email, name, hashed_password, is_oauth, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

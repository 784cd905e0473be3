package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fluxyapp/fluxy/internal/models"
)

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, display_name, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.DisplayName, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by their email address.
// Returns (nil, nil) when no such user exists.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "email", email)
}

// GetUserByID retrieves a user by their ID.
// Returns (nil, nil) when no such user exists.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, "id", id)
}

func (s *SQLiteStore) getUser(ctx context.Context, column, value string) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, display_name, password_hash, created_at, updated_at
		FROM users WHERE `+column+` = ?`, value,
	).Scan(&user.ID, &user.Email, &user.DisplayName, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}
	return user, nil
}

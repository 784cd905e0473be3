package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fluxyapp/fluxy/internal/models"
	"github.com/fluxyapp/fluxy/internal/storage"
)

// CreateFriendship persists a new friend request.
func (s *SQLiteStore) CreateFriendship(ctx context.Context, f *models.Friendship) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	if f.CreatedAt == 0 {
		f.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO friendships (id, requester_id, addressee_id, status, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		f.ID, f.RequesterID, f.AddresseeID, string(f.Status), f.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create friendship: %w", err)
	}
	return nil
}

// GetFriendship retrieves a friendship by ID.
func (s *SQLiteStore) GetFriendship(ctx context.Context, id string) (*models.Friendship, error) {
	f, err := s.scanFriendship(s.db.QueryRowContext(ctx, `
		SELECT id, requester_id, addressee_id, status, created_at
		FROM friendships WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("friendship %s: %w", id, storage.ErrNotFound)
	}
	return f, nil
}

// GetFriendshipBetween looks a pair up regardless of who requested.
// Returns (nil, nil) when the pair has no row.
func (s *SQLiteStore) GetFriendshipBetween(ctx context.Context, userA, userB string) (*models.Friendship, error) {
	return s.scanFriendship(s.db.QueryRowContext(ctx, `
		SELECT id, requester_id, addressee_id, status, created_at
		FROM friendships
		WHERE (requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)`,
		userA, userB, userB, userA))
}

// ListFriendshipsForUser retrieves every friendship the user is a party to,
// newest first.
func (s *SQLiteStore) ListFriendshipsForUser(ctx context.Context, userID string) ([]models.Friendship, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, requester_id, addressee_id, status, created_at
		FROM friendships
		WHERE requester_id = ? OR addressee_id = ?
		ORDER BY created_at DESC, id`,
		userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list friendships: %w", err)
	}
	defer rows.Close()

	var friendships []models.Friendship
	for rows.Next() {
		var f models.Friendship
		var status string
		if err := rows.Scan(&f.ID, &f.RequesterID, &f.AddresseeID, &status, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan friendship: %w", err)
		}
		f.Status = models.FriendshipStatus(status)
		friendships = append(friendships, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate friendships: %w", err)
	}
	return friendships, nil
}

// UpdateFriendship updates a friendship's status.
func (s *SQLiteStore) UpdateFriendship(ctx context.Context, f *models.Friendship) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE friendships SET status = ? WHERE id = ?",
		string(f.Status), f.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update friendship: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("friendship %s: %w", f.ID, storage.ErrNotFound)
	}
	return nil
}

// DeleteFriendship removes a friendship by ID.
func (s *SQLiteStore) DeleteFriendship(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM friendships WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete friendship: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("friendship %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) scanFriendship(row *sql.Row) (*models.Friendship, error) {
	var f models.Friendship
	var status string
	err := row.Scan(&f.ID, &f.RequesterID, &f.AddresseeID, &status, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get friendship: %w", err)
	}
	f.Status = models.FriendshipStatus(status)
	return &f, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fluxyapp/fluxy/internal/models"
	"github.com/fluxyapp/fluxy/internal/storage"
)

// CreateMember inserts a new household member.
func (s *SQLiteStore) CreateMember(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.CreatedAt == 0 {
		member.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO members (id, name, color, emoji, created_at) VALUES (?, ?, ?, ?, ?)",
		member.ID, member.Name, member.Color, member.Emoji, member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

// GetMember retrieves a member by ID.
func (s *SQLiteStore) GetMember(ctx context.Context, id string) (*models.Member, error) {
	member := &models.Member{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, color, emoji, created_at FROM members WHERE id = ?", id,
	).Scan(&member.ID, &member.Name, &member.Color, &member.Emoji, &member.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("member %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

// ListMembers retrieves all household members.
func (s *SQLiteStore) ListMembers(ctx context.Context) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, color, emoji, created_at FROM members ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Color, &m.Emoji, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

// UpdateMember updates a member's display fields.
func (s *SQLiteStore) UpdateMember(ctx context.Context, member *models.Member) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE members SET name = ?, color = ?, emoji = ? WHERE id = ?",
		member.Name, member.Color, member.Emoji, member.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("member %s: %w", member.ID, storage.ErrNotFound)
	}
	return nil
}

// DeleteMember removes the member row. Scrubbing the member out of rotation
// orders and participant lists is the service layer's job, so the re-anchoring
// rules stay in the ledger.
func (s *SQLiteStore) DeleteMember(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM members WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("member %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

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

// CreateInvitation persists a new subscription invitation.
func (s *SQLiteStore) CreateInvitation(ctx context.Context, inv *models.Invitation) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	if inv.CreatedAt == 0 {
		inv.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subscription_invitations (id, subscription_id, inviter_id, invitee_id, status, created_at, responded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.SubscriptionID, inv.InviterID, inv.InviteeID,
		string(inv.Status), inv.CreatedAt, inv.RespondedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create invitation: %w", err)
	}
	return nil
}

// GetInvitation retrieves an invitation by ID.
func (s *SQLiteStore) GetInvitation(ctx context.Context, id string) (*models.Invitation, error) {
	var inv models.Invitation
	var status string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, subscription_id, inviter_id, invitee_id, status, created_at, responded_at
		FROM subscription_invitations WHERE id = ?`, id,
	).Scan(&inv.ID, &inv.SubscriptionID, &inv.InviterID, &inv.InviteeID,
		&status, &inv.CreatedAt, &inv.RespondedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("invitation %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}
	inv.Status = models.InvitationStatus(status)
	return &inv, nil
}

// ListInvitationsForUser retrieves invitations the user sent or received,
// newest first.
func (s *SQLiteStore) ListInvitationsForUser(ctx context.Context, userID string) ([]models.Invitation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, subscription_id, inviter_id, invitee_id, status, created_at, responded_at
		FROM subscription_invitations
		WHERE inviter_id = ? OR invitee_id = ?
		ORDER BY created_at DESC, id`,
		userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	var invitations []models.Invitation
	for rows.Next() {
		var inv models.Invitation
		var status string
		if err := rows.Scan(&inv.ID, &inv.SubscriptionID, &inv.InviterID, &inv.InviteeID,
			&status, &inv.CreatedAt, &inv.RespondedAt); err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		inv.Status = models.InvitationStatus(status)
		invitations = append(invitations, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invitations: %w", err)
	}
	return invitations, nil
}

// UpdateInvitation updates an invitation's status and response time.
func (s *SQLiteStore) UpdateInvitation(ctx context.Context, inv *models.Invitation) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE subscription_invitations SET status = ?, responded_at = ? WHERE id = ?",
		string(inv.Status), inv.RespondedAt, inv.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update invitation: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("invitation %s: %w", inv.ID, storage.ErrNotFound)
	}
	return nil
}

package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fluxyapp/fluxy/internal/models"
	"github.com/fluxyapp/fluxy/internal/storage"
)

// CreateMessage persists a new message.
func (s *SQLiteStore) CreateMessage(ctx context.Context, msg *models.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.CreatedAt == 0 {
		msg.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, sender_id, recipient_id, subscription_id, body, type, read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.SenderID, msg.RecipientID, msg.SubscriptionID,
		msg.Body, string(msg.Type), boolInt(msg.Read), msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// ListMessagesForRecipient retrieves a recipient's inbox, newest first.
func (s *SQLiteStore) ListMessagesForRecipient(ctx context.Context, recipientID string) ([]models.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sender_id, recipient_id, subscription_id, body, type, read, created_at
		FROM messages WHERE recipient_id = ? ORDER BY created_at DESC, id`,
		recipientID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		var msgType string
		var read int
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.SubscriptionID,
			&m.Body, &msgType, &read, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		m.Type = models.MessageType(msgType)
		m.Read = read != 0
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}
	return messages, nil
}

// MarkMessageRead marks a message as read by its recipient.
func (s *SQLiteStore) MarkMessageRead(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE messages SET read = 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to mark message read: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("message %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

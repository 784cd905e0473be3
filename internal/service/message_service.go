package service

import (
	"context"
	"log/slog"

	"github.com/fluxyapp/fluxy/internal/models"
	"github.com/fluxyapp/fluxy/internal/storage"
)

// MessageService owns user-to-user messages and scheduler-generated reminders.
type MessageService struct {
	store storage.Store
}

// NewMessageService creates a MessageService with the given storage backend.
func NewMessageService(store storage.Store) *MessageService {
	return &MessageService{store: store}
}

// Send persists a new message.
func (s *MessageService) Send(ctx context.Context, msg *models.Message) error {
	if msg.Body == "" {
		return ErrEmptyBody
	}
	if msg.Type == "" {
		msg.Type = models.MessageTypeGeneral
	}

	if err := s.store.CreateMessage(ctx, msg); err != nil {
		return err
	}
	slog.Info("Message sent",
		"message_id", msg.ID, "recipient_id", msg.RecipientID, "type", msg.Type)
	return nil
}

// Inbox retrieves a recipient's messages, newest first.
func (s *MessageService) Inbox(ctx context.Context, recipientID string) ([]models.Message, error) {
	return s.store.ListMessagesForRecipient(ctx, recipientID)
}

// MarkRead marks a message as read.
func (s *MessageService) MarkRead(ctx context.Context, id string) error {
	return s.store.MarkMessageRead(ctx, id)
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-backend/internal/domain/entities"
	"github.com/clinicore/clinic-backend/internal/domain/providers"
	"github.com/clinicore/clinic-backend/internal/domain/repositories"
	"github.com/clinicore/clinic-backend/internal/infrastructure/observability"
	apperrors "github.com/clinicore/clinic-backend/pkg/errors"
)

// MessageService handles direct messages between users and their derived
// conversation views
type MessageService struct {
	messages      repositories.MessageRepository
	users         repositories.UserRepository
	notifications *NotificationService
	bus           providers.EventBus
}

// NewMessageService creates a new message service
func NewMessageService(messages repositories.MessageRepository, users repositories.UserRepository, notifications *NotificationService, bus providers.EventBus) *MessageService {
	return &MessageService{
		messages:      messages,
		users:         users,
		notifications: notifications,
		bus:           bus,
	}
}

// Send delivers a message from one user to another. Both sides must exist.
// The receiver gets a message notification; the stored message starts
// unread.
func (s *MessageService) Send(ctx context.Context, senderID, receiverID, content string) (*entities.Message, error) {
	if content == "" {
		return nil, apperrors.NewValidationError("message content is required")
	}

	sender, err := s.users.GetByID(ctx, senderID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	receiver, err := s.users.GetByID(ctx, receiverID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("user not found")
	}

	message := &entities.Message{
		ID:           uuid.New().String(),
		SenderID:     sender.ID,
		SenderName:   sender.Name,
		ReceiverID:   receiver.ID,
		ReceiverName: receiver.Name,
		Content:      content,
		Timestamp:    time.Now(),
		Read:         false,
	}

	if err := s.messages.Create(ctx, message); err != nil {
		return nil, err
	}

	if _, err := s.notifications.Create(ctx, receiver.ID, "New Message",
		fmt.Sprintf("You have a new message from %s", sender.Name),
		entities.NotificationTypeMessage, "/messages"); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("receiver_id", receiver.ID).Msg("failed to create message notification")
	}

	event := entities.NewClinicEvent(receiver.ID, entities.ClinicEventMessageSent, map[string]interface{}{
		"message_id": message.ID,
		"sender_id":  message.SenderID,
	})
	if err := s.bus.Publish(ctx, providers.GetUserChannel(receiver.ID), event); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("receiver_id", receiver.ID).Msg("failed to publish message event")
	}

	return message, nil
}

// Thread retrieves the messages between two users, oldest first
func (s *MessageService) Thread(ctx context.Context, userID, otherUserID string) ([]*entities.Message, error) {
	return s.messages.ListBetween(ctx, userID, otherUserID)
}

// ListForUser retrieves every message a user sent or received, newest first
func (s *MessageService) ListForUser(ctx context.Context, userID string) ([]*entities.Message, error) {
	return s.messages.ListForUser(ctx, userID)
}

// Conversations derives a user's conversation list from their messages:
// one entry per counterpart with the latest message and unread count,
// ordered by recency. Counterparts whose account no longer exists are
// skipped.
func (s *MessageService) Conversations(ctx context.Context, userID string) ([]*entities.Conversation, error) {
	messages, err := s.messages.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	latest := make(map[string]*entities.Message)
	unread := make(map[string]int)
	var order []string

	for _, msg := range messages {
		counterpartID := msg.SenderID
		if counterpartID == userID {
			counterpartID = msg.ReceiverID
		}

		if _, ok := latest[counterpartID]; !ok {
			latest[counterpartID] = msg
			order = append(order, counterpartID)
		}
		if msg.ReceiverID == userID && !msg.Read {
			unread[counterpartID]++
		}
	}

	conversations := make([]*entities.Conversation, 0, len(order))
	for _, counterpartID := range order {
		counterpart, err := s.users.GetByID(ctx, counterpartID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		conversations = append(conversations, &entities.Conversation{
			User:        counterpart.Sanitized(),
			LastMessage: latest[counterpartID],
			UnreadCount: unread[counterpartID],
		})
	}
	return conversations, nil
}

// MarkRead flips the unread messages a counterpart sent to the user
func (s *MessageService) MarkRead(ctx context.Context, userID, otherUserID string) error {
	return s.messages.MarkRead(ctx, userID, otherUserID)
}

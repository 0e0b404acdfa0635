package repositories

import (
	"context"

	"github.com/clinicore/clinic-backend/internal/domain/entities"
)

// MessageRepository defines the interface for direct-message operations
type MessageRepository interface {
	// Create creates a new message
	Create(ctx context.Context, message *entities.Message) error

	// ListBetween retrieves the thread between two users, oldest first
	ListBetween(ctx context.Context, userID, otherUserID string) ([]*entities.Message, error)

	// ListForUser retrieves every message a user sent or received, newest first
	ListForUser(ctx context.Context, userID string) ([]*entities.Message, error)

	// MarkRead flips the read flag on unread messages sent by senderID to receiverID
	MarkRead(ctx context.Context, receiverID, senderID string) error
}

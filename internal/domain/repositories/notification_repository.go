package repositories

import (
	"context"

	"github.com/clinicore/clinic-backend/internal/domain/entities"
)

// NotificationRepository defines the interface for per-user notifications
type NotificationRepository interface {
	// Create creates a new notification
	Create(ctx context.Context, notification *entities.Notification) error

	// ListForUser retrieves a user's notifications, newest first
	ListForUser(ctx context.Context, userID string) ([]*entities.Notification, error)

	// MarkRead flips the read flag on one notification; no-op when absent
	MarkRead(ctx context.Context, id string) error

	// MarkAllRead flips the read flag on all of a user's unread notifications
	MarkAllRead(ctx context.Context, userID string) error
}

package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-backend/internal/domain/entities"
	"github.com/clinicore/clinic-backend/internal/domain/providers"
	"github.com/clinicore/clinic-backend/internal/domain/repositories"
	"github.com/clinicore/clinic-backend/internal/infrastructure/observability"
)

// NotificationService handles per-user notifications and their live fanout
type NotificationService struct {
	repo repositories.NotificationRepository
	bus  providers.EventBus
}

// NewNotificationService creates a new notification service
func NewNotificationService(repo repositories.NotificationRepository, bus providers.EventBus) *NotificationService {
	return &NotificationService{
		repo: repo,
		bus:  bus,
	}
}

// Create records a notification for a user and fans it out on the event bus.
// Fanout is best effort; the stored row is the source of truth.
func (s *NotificationService) Create(ctx context.Context, userID, title, message string, notifType entities.NotificationType, link string) (*entities.Notification, error) {
	notification := &entities.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      notifType,
		Read:      false,
		Timestamp: time.Now(),
		Link:      link,
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, err
	}

	s.publish(ctx, userID, entities.ClinicEventNotificationCreated, map[string]interface{}{
		"notification_id": notification.ID,
		"title":           notification.Title,
		"type":            string(notification.Type),
		"link":            notification.Link,
	})

	return notification, nil
}

// ListForUser retrieves a user's notifications, newest first
func (s *NotificationService) ListForUser(ctx context.Context, userID string) ([]*entities.Notification, error) {
	return s.repo.ListForUser(ctx, userID)
}

// MarkRead flips the read flag on one notification
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	return s.repo.MarkRead(ctx, id)
}

// MarkAllRead flips the read flag on all of a user's notifications
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllRead(ctx, userID)
}

// Subscribe opens a live event stream for a user. The stream closes when
// the context is cancelled.
func (s *NotificationService) Subscribe(ctx context.Context, userID string) (<-chan *entities.ClinicEvent, error) {
	return s.bus.Subscribe(ctx, providers.GetUserChannel(userID))
}

// publish emits an event on the user's channel, logging failures instead of
// surfacing them
func (s *NotificationService) publish(ctx context.Context, userID string, eventType entities.ClinicEventType, payload map[string]interface{}) {
	event := entities.NewClinicEvent(userID, eventType, payload)
	if err := s.bus.Publish(ctx, providers.GetUserChannel(userID), event); err != nil {
		logger := observability.LoggerFromContext(ctx)
		logger.Warn().Err(err).Str("user_id", userID).Str("event_type", string(eventType)).
			Msg("failed to publish event")
	}
}

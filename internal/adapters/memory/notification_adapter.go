package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/clinicore/clinic-backend/internal/domain/entities"
	apperrors "github.com/clinicore/clinic-backend/pkg/errors"
)

// NotificationAdapter implements NotificationRepository with an
// in-process map.
type NotificationAdapter struct {
	mu            sync.RWMutex
	notifications map[string]*entities.Notification
}

// NewNotificationAdapter creates an empty in-memory notification repository
func NewNotificationAdapter() *NotificationAdapter {
	return &NotificationAdapter{notifications: make(map[string]*entities.Notification)}
}

// Create creates a new notification
func (a *NotificationAdapter) Create(ctx context.Context, notification *entities.Notification) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.notifications[notification.ID]; ok {
		return apperrors.NewConflictError(fmt.Sprintf("notification %s already exists", notification.ID))
	}
	c := *notification
	a.notifications[notification.ID] = &c
	return nil
}

// ListForUser retrieves a user's notifications, newest first
func (a *NotificationAdapter) ListForUser(ctx context.Context, userID string) ([]*entities.Notification, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var out []*entities.Notification
	for _, n := range a.notifications {
		if n.UserID == userID {
			c := *n
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// MarkRead flips the read flag on one notification; no-op when absent
func (a *NotificationAdapter) MarkRead(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if n, ok := a.notifications[id]; ok {
		n.Read = true
	}
	return nil
}

// MarkAllRead flips the read flag on all of a user's unread notifications
func (a *NotificationAdapter) MarkAllRead(ctx context.Context, userID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, n := range a.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
		}
	}
	return nil
}

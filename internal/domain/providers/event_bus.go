package providers

import (
	"context"

	"github.com/clinicore/clinic-backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.ClinicEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.ClinicEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannelUserPrefix is the prefix for per-user channels
const EventChannelUserPrefix = "user:"

// GetUserChannel returns the channel name for one user's events
func GetUserChannel(userID string) string {
	return EventChannelUserPrefix + userID
}

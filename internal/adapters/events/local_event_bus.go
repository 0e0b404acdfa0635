package events

import (
	"context"
	"sync"

	"github.com/clinicore/clinic-backend/internal/domain/entities"
	"github.com/clinicore/clinic-backend/internal/domain/providers"
)

// LocalEventBus implements the EventBus interface with in-process channels.
// It is the default bus when no Redis connection is configured.
type LocalEventBus struct {
	subscribers map[string]map[chan *entities.ClinicEvent]struct{}
	mu          sync.RWMutex
	closed      bool
}

// NewLocalEventBus creates a new in-process event bus
func NewLocalEventBus() providers.EventBus {
	return &LocalEventBus{
		subscribers: make(map[string]map[chan *entities.ClinicEvent]struct{}),
	}
}

// Publish delivers an event to every subscriber of the channel. Delivery is
// best effort: subscribers with a full buffer miss the event.
func (b *LocalEventBus) Publish(ctx context.Context, channel string, event *entities.ClinicEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil
	}

	for subscriber := range b.subscribers[channel] {
		select {
		case subscriber <- event:
		default:
		}
	}
	return nil
}

// Subscribe subscribes to events on a channel. The subscription ends when
// the supplied context is cancelled.
func (b *LocalEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.ClinicEvent, error) {
	b.mu.Lock()
	if b.subscribers[channel] == nil {
		b.subscribers[channel] = make(map[chan *entities.ClinicEvent]struct{})
	}
	eventChan := make(chan *entities.ClinicEvent, 100)
	b.subscribers[channel][eventChan] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.removeSubscriber(channel, eventChan)
	}()

	return eventChan, nil
}

// Unsubscribe drops every subscriber on a channel
func (b *LocalEventBus) Unsubscribe(ctx context.Context, channel string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for subscriber := range b.subscribers[channel] {
		close(subscriber)
	}
	delete(b.subscribers, channel)
	return nil
}

// Close closes the event bus and all subscriber channels
func (b *LocalEventBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for channel, subscribers := range b.subscribers {
		for subscriber := range subscribers {
			close(subscriber)
		}
		delete(b.subscribers, channel)
	}
	return nil
}

func (b *LocalEventBus) removeSubscriber(channel string, eventChan chan *entities.ClinicEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subscribers, exists := b.subscribers[channel]
	if !exists {
		return
	}
	if _, ok := subscribers[eventChan]; !ok {
		return
	}

	delete(subscribers, eventChan)
	close(eventChan)

	if len(subscribers) == 0 {
		delete(b.subscribers, channel)
	}
}

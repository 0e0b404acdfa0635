package events_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-backend/internal/adapters/events"
	"github.com/clinicore/clinic-backend/internal/domain/entities"
)

func TestLocalEventBus_PublishReachesSubscribers(t *testing.T) {
	ctx := context.Background()
	bus := events.NewLocalEventBus()
	defer bus.Close()

	ch, err := bus.Subscribe(ctx, "user:pat-1")
	require.NoError(t, err)

	event := entities.NewClinicEvent("pat-1", entities.ClinicEventMessageSent, nil)
	require.NoError(t, bus.Publish(ctx, "user:pat-1", event))

	select {
	case got := <-ch:
		assert.Equal(t, event.ID, got.ID)
		assert.Equal(t, entities.ClinicEventMessageSent, got.EventType)
	case <-time.After(time.Second):
		t.Fatal("event never arrived")
	}
}

func TestLocalEventBus_ChannelsAreIsolated(t *testing.T) {
	ctx := context.Background()
	bus := events.NewLocalEventBus()
	defer bus.Close()

	ch, err := bus.Subscribe(ctx, "user:pat-1")
	require.NoError(t, err)

	require.NoError(t, bus.Publish(ctx, "user:pat-2",
		entities.NewClinicEvent("pat-2", entities.ClinicEventMessageSent, nil)))

	select {
	case got := <-ch:
		t.Fatalf("unexpected event %s", got.ID)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLocalEventBus_ContextCancelClosesSubscription(t *testing.T) {
	bus := events.NewLocalEventBus()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := bus.Subscribe(ctx, "user:pat-1")
	require.NoError(t, err)

	cancel()

	select {
	case _, open := <-ch:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("channel never closed")
	}
}

func TestLocalEventBus_PublishAfterCloseIsNoop(t *testing.T) {
	ctx := context.Background()
	bus := events.NewLocalEventBus()

	_, err := bus.Subscribe(ctx, "user:pat-1")
	require.NoError(t, err)
	require.NoError(t, bus.Close())

	assert.NoError(t, bus.Publish(ctx, "user:pat-1",
		entities.NewClinicEvent("pat-1", entities.ClinicEventMessageSent, nil)))
}

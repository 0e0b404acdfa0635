package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-backend/internal/adapters/events"
	"github.com/clinicore/clinic-backend/internal/adapters/memory"
	"github.com/clinicore/clinic-backend/internal/application/services"
	"github.com/clinicore/clinic-backend/internal/domain/entities"
	apperrors "github.com/clinicore/clinic-backend/pkg/errors"
)

type messageFixture struct {
	svc           *services.MessageService
	users         *memory.UserAdapter
	messages      *memory.MessageAdapter
	notifications *memory.NotificationAdapter
}

func newMessageFixture(t *testing.T) *messageFixture {
	t.Helper()
	users := memory.NewUserAdapter()
	messages := memory.NewMessageAdapter()
	notifications := memory.NewNotificationAdapter()
	bus := events.NewLocalEventBus()
	t.Cleanup(func() { bus.Close() })

	notificationSvc := services.NewNotificationService(notifications, bus)
	f := &messageFixture{
		svc:           services.NewMessageService(messages, users, notificationSvc, bus),
		users:         users,
		messages:      messages,
		notifications: notifications,
	}

	ctx := context.Background()
	for _, u := range []struct {
		id, name string
		role     entities.UserRole
	}{
		{"doc-1", "John Carter", entities.RoleDoctor},
		{"pat-1", "Jane Smith", entities.RolePatient},
		{"pat-2", "Robert Brown", entities.RolePatient},
	} {
		require.NoError(t, users.Create(ctx, &entities.User{
			ID: u.id, Email: u.id + "@example.com", Name: u.name, Role: u.role,
			DoctorStatus: entities.DoctorStatusApproved,
			CreatedAt:    time.Now(), UpdatedAt: time.Now(),
		}))
	}
	return f
}

func TestMessageService_Send_NotifiesReceiver(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture(t)

	msg, err := f.svc.Send(ctx, "doc-1", "pat-1", "Your results are in")
	require.NoError(t, err)

	assert.Equal(t, "John Carter", msg.SenderName)
	assert.Equal(t, "Jane Smith", msg.ReceiverName)
	assert.False(t, msg.Read)

	notifs, err := f.notifications.ListForUser(ctx, "pat-1")
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, "New Message", notifs[0].Title)
	assert.Equal(t, "You have a new message from John Carter", notifs[0].Message)
	assert.Equal(t, entities.NotificationTypeMessage, notifs[0].Type)
	assert.Equal(t, "/messages", notifs[0].Link)
}

func TestMessageService_Send_Validation(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture(t)

	_, err := f.svc.Send(ctx, "doc-1", "pat-1", "")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))

	_, err = f.svc.Send(ctx, "doc-1", "nobody", "hello")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestMessageService_Conversations_DerivedFromMessages(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture(t)

	send := func(sender, receiver, content string) {
		_, err := f.svc.Send(ctx, sender, receiver, content)
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	send("pat-1", "doc-1", "Hello doctor")
	send("doc-1", "pat-1", "Hello Jane")
	send("doc-1", "pat-1", "How are you feeling?")
	send("pat-2", "doc-1", "Can I reschedule?")

	conversations, err := f.svc.Conversations(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, conversations, 2)

	// Most recent counterpart first.
	assert.Equal(t, "pat-2", conversations[0].User.ID)
	assert.Equal(t, "Can I reschedule?", conversations[0].LastMessage.Content)
	assert.Equal(t, 1, conversations[0].UnreadCount)

	assert.Equal(t, "pat-1", conversations[1].User.ID)
	assert.Equal(t, "How are you feeling?", conversations[1].LastMessage.Content)
	// Only the inbound direction counts as unread for the doctor.
	assert.Equal(t, 1, conversations[1].UnreadCount)
	assert.Empty(t, conversations[1].User.PasswordHash)
}

func TestMessageService_MarkRead_OnlyCounterpartDirection(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture(t)

	_, err := f.svc.Send(ctx, "pat-1", "doc-1", "Hello doctor")
	require.NoError(t, err)
	_, err = f.svc.Send(ctx, "pat-2", "doc-1", "Hello from Robert")
	require.NoError(t, err)

	require.NoError(t, f.svc.MarkRead(ctx, "doc-1", "pat-1"))

	conversations, err := f.svc.Conversations(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, conversations, 2)
	for _, c := range conversations {
		switch c.User.ID {
		case "pat-1":
			assert.Zero(t, c.UnreadCount)
		case "pat-2":
			assert.Equal(t, 1, c.UnreadCount)
		}
	}
}

func TestMessageService_Conversations_SkipsDeletedCounterpart(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture(t)

	_, err := f.svc.Send(ctx, "pat-1", "doc-1", "Hello doctor")
	require.NoError(t, err)
	require.NoError(t, f.users.Delete(ctx, "pat-1"))

	conversations, err := f.svc.Conversations(ctx, "doc-1")
	require.NoError(t, err)
	assert.Empty(t, conversations)
}

func TestMessageService_Thread_OldestFirst(t *testing.T) {
	ctx := context.Background()
	f := newMessageFixture(t)

	_, err := f.svc.Send(ctx, "pat-1", "doc-1", "first")
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = f.svc.Send(ctx, "doc-1", "pat-1", "second")
	require.NoError(t, err)

	thread, err := f.svc.Thread(ctx, "doc-1", "pat-1")
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, "first", thread[0].Content)
	assert.Equal(t, "second", thread[1].Content)
}

package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/clinicore/clinic-backend/internal/domain/entities"
	apperrors "github.com/clinicore/clinic-backend/pkg/errors"
)

// MessageAdapter implements MessageRepository with an in-process map.
type MessageAdapter struct {
	mu       sync.RWMutex
	messages map[string]*entities.Message
}

// NewMessageAdapter creates an empty in-memory message repository
func NewMessageAdapter() *MessageAdapter {
	return &MessageAdapter{messages: make(map[string]*entities.Message)}
}

// Create creates a new message
func (a *MessageAdapter) Create(ctx context.Context, message *entities.Message) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.messages[message.ID]; ok {
		return apperrors.NewConflictError(fmt.Sprintf("message %s already exists", message.ID))
	}
	c := *message
	a.messages[message.ID] = &c
	return nil
}

// ListBetween retrieves the thread between two users, oldest first
func (a *MessageAdapter) ListBetween(ctx context.Context, userID, otherUserID string) ([]*entities.Message, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var out []*entities.Message
	for _, m := range a.messages {
		if (m.SenderID == userID && m.ReceiverID == otherUserID) ||
			(m.ReceiverID == userID && m.SenderID == otherUserID) {
			c := *m
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ListForUser retrieves every message a user sent or received, newest first
func (a *MessageAdapter) ListForUser(ctx context.Context, userID string) ([]*entities.Message, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var out []*entities.Message
	for _, m := range a.messages {
		if m.SenderID == userID || m.ReceiverID == userID {
			c := *m
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

// MarkRead flips the read flag on unread messages from senderID to receiverID
func (a *MessageAdapter) MarkRead(ctx context.Context, receiverID, senderID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, m := range a.messages {
		if m.ReceiverID == receiverID && m.SenderID == senderID && !m.Read {
			m.Read = true
		}
	}
	return nil
}

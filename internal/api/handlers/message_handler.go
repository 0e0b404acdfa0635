package handlers

import (
	"context"
	"net/http"

	"github.com/clinicore/clinic-backend/internal/domain/entities"
)

// Messenger is the surface of the message service the handler needs
type Messenger interface {
	Send(ctx context.Context, senderID, receiverID, content string) (*entities.Message, error)
	Thread(ctx context.Context, userID, otherUserID string) ([]*entities.Message, error)
	ListForUser(ctx context.Context, userID string) ([]*entities.Message, error)
	Conversations(ctx context.Context, userID string) ([]*entities.Conversation, error)
	MarkRead(ctx context.Context, userID, otherUserID string) error
}

// MessageHandler handles messaging HTTP requests
type MessageHandler struct {
	messages Messenger
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messages Messenger) *MessageHandler {
	return &MessageHandler{messages: messages}
}

type sendMessageRequest struct {
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
}

// SendMessage handles POST /api/messages
func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message, err := h.messages.Send(r.Context(), req.SenderID, req.ReceiverID, req.Content)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, message)
}

// ListMessages handles GET /api/users/{id}/messages. With ?with=<userID>
// it returns the thread with that counterpart oldest first; without it,
// everything the user sent or received newest first.
func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	otherUserID := r.URL.Query().Get("with")

	var (
		messages []*entities.Message
		err      error
	)
	if otherUserID != "" {
		messages, err = h.messages.Thread(r.Context(), userID, otherUserID)
	} else {
		messages, err = h.messages.ListForUser(r.Context(), userID)
	}
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"messages": messages,
		"count":    len(messages),
	})
}

// ListConversations handles GET /api/users/{id}/conversations
func (h *MessageHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	conversations, err := h.messages.Conversations(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"conversations": conversations,
		"count":         len(conversations),
	})
}

type markReadRequest struct {
	OtherUserID string `json:"other_user_id"`
}

// MarkMessagesRead handles POST /api/users/{id}/messages/read: marks the
// unread messages a counterpart sent to the user
func (h *MessageHandler) MarkMessagesRead(w http.ResponseWriter, r *http.Request) {
	var req markReadRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OtherUserID == "" {
		respondWithError(w, http.StatusBadRequest, "other_user_id is required")
		return
	}

	if err := h.messages.MarkRead(r.Context(), r.PathValue("id"), req.OtherUserID); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

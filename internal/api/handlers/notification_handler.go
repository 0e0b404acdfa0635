package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/clinicore/clinic-backend/internal/domain/entities"
	"github.com/clinicore/clinic-backend/internal/infrastructure/observability"
)

// Notifier is the surface of the notification service the handler needs
type Notifier interface {
	ListForUser(ctx context.Context, userID string) ([]*entities.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) error
	Subscribe(ctx context.Context, userID string) (<-chan *entities.ClinicEvent, error)
}

// NotificationHandler handles notification HTTP requests, including the
// live SSE stream
type NotificationHandler struct {
	notifications Notifier
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifications Notifier) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// ListNotifications handles GET /api/users/{id}/notifications
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notifications.ListForUser(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": notifications,
		"count":         len(notifications),
	})
}

// MarkNotificationRead handles POST /api/notifications/{id}/read
func (h *NotificationHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notifications.MarkRead(r.Context(), r.PathValue("id")); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkAllNotificationsRead handles POST /api/users/{id}/notifications/read-all
func (h *NotificationHandler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notifications.MarkAllRead(r.Context(), r.PathValue("id")); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StreamNotifications handles SSE connections for a user's live events
// GET /api/users/{id}/notifications/stream
func (h *NotificationHandler) StreamNotifications(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	eventChan, err := h.notifications.Subscribe(r.Context(), userID)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error().Err(err).
			Str("user_id", userID).Msg("failed to subscribe to user events")
		respondWithError(w, http.StatusInternalServerError, "failed to open stream")
		return
	}

	sendEvent(w, "connected", map[string]interface{}{
		"user_id":   userID,
		"timestamp": time.Now(),
	})
	flusher.Flush()

	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			sendEvent(w, "heartbeat", map[string]interface{}{
				"timestamp": time.Now(),
			})
			flusher.Flush()
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event == nil {
				continue
			}
			sendEvent(w, string(event.EventType), event)
			flusher.Flush()
		}
	}
}

func sendEvent(w http.ResponseWriter, eventType string, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\n", eventType)
	fmt.Fprintf(w, "data: %s\n\n", jsonData)
}

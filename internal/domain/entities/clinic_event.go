package entities

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// ClinicEventType represents the type of real-time clinic event
type ClinicEventType string

const (
	ClinicEventNotificationCreated ClinicEventType = "notification_created"
	ClinicEventAppointmentBooked   ClinicEventType = "appointment_booked"
	ClinicEventAppointmentUpdated  ClinicEventType = "appointment_updated"
	ClinicEventMessageSent         ClinicEventType = "message_sent"
	ClinicEventDiagnosisRecorded   ClinicEventType = "diagnosis_recorded"
)

// ClinicEvent is a real-time update event scoped to one user. Events are
// best-effort fan-out for live clients; the stores remain the source of
// truth.
type ClinicEvent struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"user_id"`
	EventType ClinicEventType        `json:"event_type"`
	Timestamp time.Time              `json:"timestamp"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}

// NewClinicEvent creates a new event for a user
func NewClinicEvent(userID string, eventType ClinicEventType, payload map[string]interface{}) *ClinicEvent {
	return &ClinicEvent{
		ID:        generateEventID(),
		UserID:    userID,
		EventType: eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// generateEventID generates a unique event ID
func generateEventID() string {
	return time.Now().Format("20060102150405") + "-" + randomString(8)
}

// randomString generates a random string of specified length
func randomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based if crypto/rand fails
		return time.Now().Format("150405.000")
	}
	return hex.EncodeToString(bytes)[:length]
}

package entities

import "time"

// NotificationType represents the notification purpose
type NotificationType string

const (
	NotificationTypeAppointment NotificationType = "appointment"
	NotificationTypeMessage     NotificationType = "message"
	NotificationTypeDiagnosis   NotificationType = "diagnosis"
	NotificationTypeSystem      NotificationType = "system"
)

// Notification is owned by exactly one user and is only ever created as
// a side effect of another action (message send, diagnosis create/update).
type Notification struct {
	ID        string           `json:"id" db:"id"`
	UserID    string           `json:"user_id" db:"user_id"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	Type      NotificationType `json:"type" db:"type"`
	Read      bool             `json:"read" db:"read"`
	Timestamp time.Time        `json:"timestamp" db:"timestamp"`
	Link      string           `json:"link,omitempty" db:"link"` // dashboard deep link
}

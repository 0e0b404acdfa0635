package entities

import "time"

// Message is a direct message between two users. Sender and receiver
// names are denormalized at send time. Read state is per message, so the
// two directions of a conversation track independently.
type Message struct {
	ID           string    `json:"id" db:"id"`
	SenderID     string    `json:"sender_id" db:"sender_id"`
	SenderName   string    `json:"sender_name" db:"sender_name"`
	ReceiverID   string    `json:"receiver_id" db:"receiver_id"`
	ReceiverName string    `json:"receiver_name" db:"receiver_name"`
	Content      string    `json:"content" db:"content"`
	Timestamp    time.Time `json:"timestamp" db:"timestamp"`
	Read         bool      `json:"read" db:"read"`
}

// Conversation is the derived view of a message thread with one
// counterpart: the latest message plus how many inbound messages are
// still unread. It is computed on read, never stored.
type Conversation struct {
	User        *User    `json:"user"`
	LastMessage *Message `json:"last_message"`
	UnreadCount int      `json:"unread_count"`
}

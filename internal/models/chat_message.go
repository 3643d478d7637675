package models

import "time"

type MessageStatus string

const (
	MessagePending   MessageStatus = "pending"
	MessageDelivered MessageStatus = "delivered"
	MessageError     MessageStatus = "error"
)

// ChatMessage is stored once delivery succeeds; the pending/error states
// exist only on the sending side and are never persisted.
type ChatMessage struct {
	ID         string    `bson:"id" json:"id"`
	TempID     string    `bson:"temp_id,omitempty" json:"temp_id,omitempty"`
	SenderID   string    `bson:"sender_id" json:"sender_id"`
	SenderName string    `bson:"sender_name" json:"sender_name"`
	Body       string    `bson:"body" json:"body"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`

	Status MessageStatus `bson:"-" json:"status,omitempty"`
}

package domain

import "time"

// Message is one direct message between two users. Immutable after
// creation except for the read flag, which only ever flips false→true.
// ID and CreatedAt are assigned by the database and both increase with
// creation order, so (created_at, id) is a total order within a pair.
type Message struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SenderID   uint64    `gorm:"column:sender_id;not null;index:idx_messages_pair,priority:1" json:"sender_id"`
	ReceiverID uint64    `gorm:"column:receiver_id;not null;index:idx_messages_pair,priority:2" json:"receiver_id"`
	Body       string    `gorm:"column:body;type:text;not null" json:"body"`
	Read       bool      `gorm:"column:is_read;default:false" json:"read"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime;index:idx_messages_created_at,sort:desc" json:"created_at"`
}

func (Message) TableName() string { return "messages" }

// SendMessageRequest is the request body for sending a direct message.
type SendMessageRequest struct {
	ReceiverID uint64 `json:"receiver_id" binding:"required"`
	Body       string `json:"body" binding:"required"`
}

// MessageWithProfiles decorates a message with the public profile
// summaries of both participants for API responses.
type MessageWithProfiles struct {
	Message
	Sender   *UserSummary `json:"sender,omitempty"`
	Receiver *UserSummary `json:"receiver,omitempty"`
}

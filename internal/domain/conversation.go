package domain

import "time"

// Conversation is the denormalized per-pair summary row maintained
// alongside every message insert. The pair key is stored ordered
// (UserLow < UserHigh) so {A,B} and {B,A} map to the same row.
type Conversation struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	UserLow       uint64    `gorm:"column:user_low;not null;uniqueIndex:idx_conversations_pair,priority:1" json:"-"`
	UserHigh      uint64    `gorm:"column:user_high;not null;uniqueIndex:idx_conversations_pair,priority:2;index:idx_conversations_high" json:"-"`
	LastMessageID uint64    `gorm:"column:last_message_id;not null" json:"-"`
	LastMessageAt time.Time `gorm:"column:last_message_at;not null;index:idx_conversations_recency,sort:desc" json:"-"`
}

func (Conversation) TableName() string { return "conversations" }

// Counterparty returns the participant other than userID.
func (c *Conversation) Counterparty(userID uint64) uint64 {
	if c.UserLow == userID {
		return c.UserHigh
	}
	return c.UserLow
}

// PairKey orders two user ids so an unordered pair has one canonical form.
func PairKey(a, b uint64) (low, high uint64) {
	if a < b {
		return a, b
	}
	return b, a
}

// ConversationEntry is one row of a user's conversation list: the
// counterparty's public profile and the most recent message exchanged.
type ConversationEntry struct {
	User        *UserSummary `json:"user"`
	LastMessage *Message     `json:"last_message"`
}

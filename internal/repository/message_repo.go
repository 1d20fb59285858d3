package repository

import (
	"github.com/chattermate/chattermate-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MessageRepository message data access. Create also maintains the
// per-pair conversation summary in the same transaction, so the
// conversation list never needs a full scan of the messages table.
type MessageRepository interface {
	Create(msg *domain.Message) error
	FindByID(id uint64) (*domain.Message, error)
	FindByIDs(ids []uint64) (map[uint64]*domain.Message, error)
	ListBetween(userA, userB uint64) ([]*domain.Message, error)
	MarkRead(fromID, toID uint64) error
	CountUnread(userID uint64) (int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create inserts the message and upserts the conversation summary row
// for the pair atomically. ID and CreatedAt are assigned by the database.
// The summary only ever advances: a commit carrying an older
// (created_at, id) than the stored pair leaves the row untouched, so
// out-of-order commits for the same pair cannot regress it.
func (r *messageRepository) Create(msg *domain.Message) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}

		low, high := domain.PairKey(msg.SenderID, msg.ReceiverID)
		conv := &domain.Conversation{
			UserLow:       low,
			UserHigh:      high,
			LastMessageID: msg.ID,
			LastMessageAt: msg.CreatedAt,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_low"}, {Name: "user_high"}},
			DoNothing: true,
		}).Create(conv).Error
		if err != nil {
			return err
		}

		return tx.Model(&domain.Conversation{}).
			Where("user_low = ? AND user_high = ?", low, high).
			Where("last_message_at < ? OR (last_message_at = ? AND last_message_id < ?)",
				msg.CreatedAt, msg.CreatedAt, msg.ID).
			Updates(map[string]interface{}{
				"last_message_id": msg.ID,
				"last_message_at": msg.CreatedAt,
			}).Error
	})
}

func (r *messageRepository) FindByID(id uint64) (*domain.Message, error) {
	var msg domain.Message
	err := r.db.Where("id = ?", id).First(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *messageRepository) FindByIDs(ids []uint64) (map[uint64]*domain.Message, error) {
	result := make(map[uint64]*domain.Message, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var messages []*domain.Message
	if err := r.db.Where("id IN ?", ids).Find(&messages).Error; err != nil {
		return nil, err
	}
	for _, m := range messages {
		result[m.ID] = m
	}
	return result, nil
}

// ListBetween returns every message exchanged between the pair in either
// direction, ascending by (created_at, id). The id tie-break keeps the
// order total when timestamps collide.
func (r *messageRepository) ListBetween(userA, userB uint64) ([]*domain.Message, error) {
	var messages []*domain.Message
	err := r.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkRead flags every unread message from fromID to toID as read.
// Idempotent; the opposite direction is untouched.
func (r *messageRepository) MarkRead(fromID, toID uint64) error {
	return r.db.Model(&domain.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", fromID, toID, false).
		Update("is_read", true).Error
}

// CountUnread counts unread messages addressed to userID across all pairs.
func (r *messageRepository) CountUnread(userID uint64) (int64, error) {
	var total int64
	err := r.db.Model(&domain.Message{}).
		Where("receiver_id = ? AND is_read = ?", userID, false).
		Count(&total).Error
	return total, err
}

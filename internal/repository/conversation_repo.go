package repository

import (
	"github.com/chattermate/chattermate-backend/internal/domain"
	"gorm.io/gorm"
)

// ConversationRepository reads the denormalized per-pair summaries.
// Rows are written by MessageRepository.Create; this side is read-only.
type ConversationRepository interface {
	ListForUser(userID uint64) ([]*domain.Conversation, error)
	FindByPair(userA, userB uint64) (*domain.Conversation, error)
}

type conversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates a new ConversationRepository
func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// ListForUser returns every conversation touching userID, most recent
// first. The last_message_id tie-break keeps the order deterministic
// when two conversations share a timestamp.
func (r *conversationRepository) ListForUser(userID uint64) ([]*domain.Conversation, error) {
	var conversations []*domain.Conversation
	err := r.db.
		Where("user_low = ? OR user_high = ?", userID, userID).
		Order("last_message_at DESC, last_message_id DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

func (r *conversationRepository) FindByPair(userA, userB uint64) (*domain.Conversation, error) {
	low, high := domain.PairKey(userA, userB)
	var conv domain.Conversation
	err := r.db.Where("user_low = ? AND user_high = ?", low, high).First(&conv).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

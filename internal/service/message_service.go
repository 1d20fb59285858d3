package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chattermate/chattermate-backend/internal/common"
	"github.com/chattermate/chattermate-backend/internal/domain"
	"github.com/chattermate/chattermate-backend/internal/repository"
	"github.com/chattermate/chattermate-backend/pkg/cache"
	"github.com/chattermate/chattermate-backend/pkg/logger"
	"gorm.io/gorm"
)

// Scheduler launches the asynchronous reply pipeline for a stored message.
type Scheduler interface {
	Schedule(msg *domain.Message)
}

// MessageService handles direct-message business logic: validated sends,
// thread retrieval with read-state, and the conversation list.
type MessageService struct {
	messageRepo repository.MessageRepository
	convRepo    repository.ConversationRepository
	userRepo    repository.UserRepository
	cache       cache.Service
	scheduler   Scheduler
}

// NewMessageService creates a new MessageService
func NewMessageService(
	messageRepo repository.MessageRepository,
	convRepo repository.ConversationRepository,
	userRepo repository.UserRepository,
	cacheService cache.Service,
	scheduler Scheduler,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		convRepo:    convRepo,
		userRepo:    userRepo,
		cache:       cacheService,
		scheduler:   scheduler,
	}
}

// Send validates and stores the sender's message, then kicks off the
// reply pipeline without waiting for it.
func (s *MessageService) Send(senderID, receiverID uint64, body string) (*domain.MessageWithProfiles, error) {
	if senderID == 0 || receiverID == 0 {
		return nil, common.ErrMissingUserID
	}
	if senderID == receiverID {
		return nil, common.ErrSelfMessage
	}
	if strings.TrimSpace(body) == "" {
		return nil, common.ErrEmptyBody
	}

	msg := &domain.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Body:       body,
	}
	if err := s.messageRepo.Create(msg); err != nil {
		return nil, fmt.Errorf("storing message: %w", err)
	}

	if s.scheduler != nil {
		s.scheduler.Schedule(msg)
	}

	return &domain.MessageWithProfiles{
		Message:  *msg,
		Sender:   s.profileSummary(senderID),
		Receiver: s.profileSummary(receiverID),
	}, nil
}

// GetThread returns all messages between userID and counterpartyID in
// (created_at, id) order, and marks messages from the counterparty as
// read as a side effect of viewing.
func (s *MessageService) GetThread(userID, counterpartyID uint64) ([]*domain.Message, error) {
	if userID == 0 || counterpartyID == 0 {
		return nil, common.ErrMissingUserID
	}

	messages, err := s.messageRepo.ListBetween(userID, counterpartyID)
	if err != nil {
		return nil, fmt.Errorf("listing thread: %w", err)
	}

	if err := s.messageRepo.MarkRead(counterpartyID, userID); err != nil {
		// Reading the thread succeeded; a failed read-flag update is not
		// worth failing the request over.
		logger.GetLogger().Warn().Err(err).
			Uint64("user_id", userID).
			Uint64("counterparty_id", counterpartyID).
			Msg("marking messages read failed")
	}

	return messages, nil
}

// ListConversations returns one entry per counterparty, most recent
// message first, from the denormalized summaries.
func (s *MessageService) ListConversations(userID uint64) ([]*domain.ConversationEntry, error) {
	if userID == 0 {
		return nil, common.ErrMissingUserID
	}

	conversations, err := s.convRepo.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("listing conversations: %w", err)
	}

	messageIDs := make([]uint64, 0, len(conversations))
	counterpartyIDs := make([]uint64, 0, len(conversations))
	for _, conv := range conversations {
		messageIDs = append(messageIDs, conv.LastMessageID)
		counterpartyIDs = append(counterpartyIDs, conv.Counterparty(userID))
	}

	lastMessages, err := s.messageRepo.FindByIDs(messageIDs)
	if err != nil {
		return nil, fmt.Errorf("loading last messages: %w", err)
	}
	counterparties, err := s.userRepo.FindByIDs(counterpartyIDs)
	if err != nil {
		return nil, fmt.Errorf("loading counterparties: %w", err)
	}

	entries := make([]*domain.ConversationEntry, 0, len(conversations))
	for _, conv := range conversations {
		counterpartyID := conv.Counterparty(userID)
		last := lastMessages[conv.LastMessageID]
		user := counterparties[counterpartyID]
		if last == nil || user == nil {
			// Summary row pointing at a vanished record; skip rather
			// than surface a half-formed entry.
			continue
		}
		entries = append(entries, &domain.ConversationEntry{
			User:        user.ToSummary(),
			LastMessage: last,
		})
	}
	return entries, nil
}

// profileSummary resolves a user's public summary through the cache.
// Returns nil when the profile does not exist.
func (s *MessageService) profileSummary(userID uint64) *domain.UserSummary {
	ctx := context.Background()

	if s.cache != nil && s.cache.IsAvailable() {
		var cached domain.UserSummary
		if err := s.cache.GetUser(ctx, userID, &cached); err == nil {
			return &cached
		}
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.GetLogger().Warn().Err(err).Uint64("user_id", userID).Msg("loading profile summary failed")
		}
		return nil
	}

	summary := user.ToSummary()
	if s.cache != nil && s.cache.IsAvailable() {
		_ = s.cache.SetUser(ctx, userID, summary)
	}
	return summary
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/chattermate/chattermate-backend/internal/common"
	"github.com/chattermate/chattermate-backend/internal/domain"
	"github.com/chattermate/chattermate-backend/internal/repository"
	"github.com/chattermate/chattermate-backend/pkg/cache"
	"gorm.io/gorm"
)

// UserService profile editing and discovery
type UserService struct {
	userRepo repository.UserRepository
	cache    cache.Service
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, cacheService cache.Service) *UserService {
	return &UserService{
		userRepo: userRepo,
		cache:    cacheService,
	}
}

// UpdateProfile applies the non-nil persona fields to the user's profile.
func (s *UserService) UpdateProfile(userID uint64, req *domain.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Profession != nil {
		user.Profession = *req.Profession
	}
	if req.Interest != nil {
		user.Interest = *req.Interest
	}
	if req.Mood != nil {
		user.Mood = *req.Mood
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}
	if req.AvatarDescription != nil {
		user.AvatarDescription = *req.AvatarDescription
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	if s.cache != nil && s.cache.IsAvailable() {
		_ = s.cache.InvalidateUser(context.Background(), userID)
	}
	return user, nil
}

// Search finds other users matching the keyword.
func (s *UserService) Search(keyword string, requesterID uint64, limit int) ([]*domain.UserSummary, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	users, err := s.userRepo.Search(keyword, requesterID, limit)
	if err != nil {
		return nil, fmt.Errorf("searching users: %w", err)
	}
	return summaries(users), nil
}

// Explore lists other users for discovery, newest first.
func (s *UserService) Explore(requesterID uint64, page, limit int) ([]*domain.UserSummary, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	users, total, err := s.userRepo.FindAll(requesterID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("listing users: %w", err)
	}
	return summaries(users), total, nil
}

func summaries(users []*domain.User) []*domain.UserSummary {
	result := make([]*domain.UserSummary, 0, len(users))
	for _, u := range users {
		result = append(result, u.ToSummary())
	}
	return result
}

package service

import (
	"errors"
	"fmt"

	"github.com/chattermate/chattermate-backend/internal/common"
	"github.com/chattermate/chattermate-backend/internal/domain"
	"github.com/chattermate/chattermate-backend/internal/repository"
	"github.com/chattermate/chattermate-backend/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService authentication business logic
type AuthService interface {
	Register(req *domain.RegisterRequest) (*domain.User, error)
	Login(email, password string) (*LoginResponse, error)
	GetCurrentUser(userID uint64) (*domain.User, error)
}

// LoginResponse login response
type LoginResponse struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

type authService struct {
	userRepo   repository.UserRepository
	jwtManager *jwt.Manager
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtManager *jwt.Manager) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *authService) Register(req *domain.RegisterRequest) (*domain.User, error) {
	exists, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if exists {
		return nil, common.ErrUserAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		Email:             req.Email,
		Password:          string(hashed),
		Name:              req.Name,
		Profession:        req.Profession,
		Interest:          req.Interest,
		Mood:              req.Mood,
		AvatarDescription: req.AvatarDescription,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

// Login authenticates by email and password and issues an access token.
func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, common.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Name)
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}

	return &LoginResponse{
		User:        user,
		AccessToken: accessToken,
	}, nil
}

// GetCurrentUser loads the authenticated user's full profile.
func (s *authService) GetCurrentUser(userID uint64) (*domain.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

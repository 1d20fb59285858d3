package handler

import (
	"errors"
	"net/http"

	"github.com/chattermate/chattermate-backend/internal/common"
	"github.com/chattermate/chattermate-backend/internal/domain"
	"github.com/chattermate/chattermate-backend/internal/middleware"
	"github.com/chattermate/chattermate-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration and login endpoints
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Email, password and name are required", err)
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		if errors.Is(err, common.ErrUserAlreadyExists) {
			common.ErrorResponse(c, http.StatusConflict, "Email already registered", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Registration failed", err)
		return
	}
	common.CreatedResponse(c, user)
}

// LoginRequest login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Email and password are required", err)
		return
	}

	resp, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			common.ErrorResponse(c, http.StatusUnauthorized, "Invalid email or password", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Login failed", err)
		return
	}
	common.SuccessResponse(c, resp, nil)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	user, err := h.authService.GetCurrentUser(userID)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "User not found", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load profile", err)
		return
	}
	common.SuccessResponse(c, user, nil)
}

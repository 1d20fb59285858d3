package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/chattermate/chattermate-backend/internal/common"
	"github.com/chattermate/chattermate-backend/internal/domain"
	"github.com/chattermate/chattermate-backend/internal/middleware"
	"github.com/chattermate/chattermate-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// UserHandler handles profile editing and user discovery endpoints
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateMe handles PUT /api/v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req domain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.userService.UpdateProfile(userID, &req)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "User not found", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to update profile", err)
		return
	}
	common.SuccessResponse(c, user, nil)
}

// Search handles GET /api/v1/users/search?q=
func (h *UserHandler) Search(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	keyword := c.Query("q")
	if keyword == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "Query parameter q is required", nil)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	users, err := h.userService.Search(keyword, userID, limit)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Search failed", err)
		return
	}
	common.SuccessResponse(c, users, nil)
}

// Explore handles GET /api/v1/users/explore
func (h *UserHandler) Explore(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	users, total, err := h.userService.Explore(userID, page, limit)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list users", err)
		return
	}
	common.SuccessResponse(c, users, &common.Meta{Page: page, Limit: limit, Total: total})
}

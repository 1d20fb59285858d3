package handler

import (
	"net/http"
	"strconv"

	"github.com/chattermate/chattermate-backend/internal/common"
	"github.com/chattermate/chattermate-backend/internal/domain"
	"github.com/chattermate/chattermate-backend/internal/middleware"
	"github.com/chattermate/chattermate-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// MessageHandler handles direct-message API endpoints
type MessageHandler struct {
	messageService *service.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// SendMessage handles POST /api/v1/messages
func (h *MessageHandler) SendMessage(c *gin.Context) {
	senderID := middleware.GetUserID(c)
	if senderID == 0 {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req domain.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Receiver ID and message body are required", err)
		return
	}

	msg, err := h.messageService.Send(senderID, req.ReceiverID, req.Body)
	if err != nil {
		if common.IsValidation(err) {
			common.ErrorResponse(c, http.StatusBadRequest, err.Error(), err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to send message", err)
		return
	}
	common.CreatedResponse(c, msg)
}

// GetThread handles GET /api/v1/messages/:userId
// Viewing a thread marks the counterparty's messages as read.
func (h *MessageHandler) GetThread(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	counterpartyID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil || counterpartyID == 0 {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid user id", err)
		return
	}

	messages, err := h.messageService.GetThread(userID, counterpartyID)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load messages", err)
		return
	}
	common.SuccessResponse(c, messages, nil)
}

// ListConversations handles GET /api/v1/conversations
func (h *MessageHandler) ListConversations(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		common.ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	conversations, err := h.messageService.ListConversations(userID)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load conversations", err)
		return
	}
	common.SuccessResponse(c, conversations, nil)
}

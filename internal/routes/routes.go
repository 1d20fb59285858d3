package routes

import (
	"github.com/chattermate/chattermate-backend/internal/handler"
	"github.com/chattermate/chattermate-backend/internal/middleware"
	"github.com/chattermate/chattermate-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	messageHandler *handler.MessageHandler,
	jwtManager *jwt.Manager,
) {
	api := router.Group("/api/v1")

	// Authentication endpoints (no auth required)
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", middleware.JWTAuth(jwtManager), authHandler.Me)

	// User discovery and profile editing
	users := api.Group("/users", middleware.JWTAuth(jwtManager))
	users.PUT("/me", userHandler.UpdateMe)
	users.GET("/search", userHandler.Search)
	users.GET("/explore", userHandler.Explore)

	// Direct messages
	messages := api.Group("/messages", middleware.JWTAuth(jwtManager))
	messages.POST("", messageHandler.SendMessage)
	messages.GET("/:userId", messageHandler.GetThread)

	// Conversation list (one entry per counterparty, most recent first)
	api.GET("/conversations", middleware.JWTAuth(jwtManager), messageHandler.ListConversations)
}

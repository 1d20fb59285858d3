package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/chattermate/chattermate-backend/internal/common"
	"github.com/chattermate/chattermate-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// JWTAuth JWT authentication middleware
func JWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Extract Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.ErrorResponse(c, http.StatusUnauthorized, "Missing authorization header", nil)
			c.Abort()
			return
		}

		// 2. Parse Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			common.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization header format", nil)
			c.Abort()
			return
		}

		tokenString := parts[1]

		// 3. Verify token
		claims, err := jwtManager.VerifyToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.ErrorResponse(c, http.StatusUnauthorized, "Token expired", err)
			} else {
				common.ErrorResponse(c, http.StatusUnauthorized, "Invalid token", err)
			}
			c.Abort()
			return
		}

		// 4. Store user info in context
		c.Set("userID", claims.UserID)
		c.Set("userName", claims.Name)

		c.Next()
	}
}

// GetUserID extracts the authenticated user id from context; zero when absent.
func GetUserID(c *gin.Context) uint64 {
	userID, exists := c.Get("userID")
	if !exists {
		return 0
	}
	if id, ok := userID.(uint64); ok {
		return id
	}
	return 0
}

// GetUserName extracts the authenticated user's name from context
func GetUserName(c *gin.Context) string {
	name, exists := c.Get("userName")
	if !exists {
		return ""
	}
	if str, ok := name.(string); ok {
		return str
	}
	return ""
}

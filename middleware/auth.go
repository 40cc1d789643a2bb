package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GarageLog/garage-log-backend/logger"
)

// AuthMiddleware extracts and validates the Bearer token, storing the
// authenticated user ID in the request context.
func AuthMiddleware(validator Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.GetLogger()

		authHeader := c.GetHeader("Authorization")
		token := ""
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if token == "" {
			log.Warnw("No token provided in request", "path", c.Request.URL.Path)
			AbortUnauthorized(c, "Authorization required")
			return
		}

		userID, err := validator.Validate(token)
		if err != nil {
			log.Warnw("Invalid JWT token",
				"error", err,
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"client_ip", c.ClientIP())

			message := "Invalid authentication token"
			if errors.Is(err, ErrTokenExpired) {
				message = "Your session has expired"
			}
			AbortUnauthorized(c, message)
			return
		}

		c.Set(string(UserIDKey), userID)
		c.Next()
	}
}

// GetUserID returns the authenticated user ID stored by AuthMiddleware.
func GetUserID(c *gin.Context) string {
	return c.GetString(string(UserIDKey))
}

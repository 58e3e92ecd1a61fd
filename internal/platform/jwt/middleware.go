package jwtmw

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Context keys under which the authenticated principal is stored.
const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
)

// Principal identifies the authenticated user of a request.
type Principal struct {
	UserID uint
	Email  string
}

// Authorizer resolves a bearer token to an authenticated principal.
// Following Go convention, the interface is defined by the consumer
// (this middleware), not the provider (the auth usecase).
type Authorizer interface {
	Authorize(ctx context.Context, token string) (Principal, error)
}

// AuthRequired returns a Gin middleware function that restricts access to
// authenticated users. The bearer token is resolved through the given
// Authorizer; there is no fallback to anonymous access.
func AuthRequired(auth Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		// 2. Resolve the token to an existing user
		principal, err := auth.Authorize(c.Request.Context(), tokenStr)
		if err != nil {
			// Rejection detail stays in the log, the client gets a generic message
			slog.Warn("request authorization failed", "error", err, "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}

		// 3. Expose the principal to downstream handlers
		c.Set(ContextUserID, principal.UserID)
		c.Set(ContextUserEmail, principal.Email)

		c.Next()
	}
}

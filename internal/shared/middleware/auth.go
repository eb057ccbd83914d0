package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"bookshare-backend/internal/shared/response"
	"bookshare-backend/pkg/jwt"
)

// SessionValidator checks that a token still has a live server-side
// session. Satisfied by the user service, so logout actually revokes
// otherwise-valid tokens.
type SessionValidator interface {
	IsSessionValid(ctx context.Context, token string) (bool, error)
}

// Context keys set for downstream handlers.
const (
	CtxUserID    = "userID"
	CtxUserEmail = "userEmail"
	CtxUserRole  = "userRole"
	CtxToken     = "sessionToken"
)

// AuthMiddleware validates the bearer token and its session.
func AuthMiddleware(manager *jwt.Manager, sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header format")
			c.Abort()
			return
		}
		token := parts[1]

		claims, err := manager.ValidateAccessToken(token)
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		valid, err := sessions.IsSessionValid(c.Request.Context(), token)
		if err != nil {
			response.InternalServerError(c, "session lookup failed")
			c.Abort()
			return
		}
		if !valid {
			response.Unauthorized(c, "session expired")
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserEmail, claims.Email)
		c.Set(CtxUserRole, claims.Role)
		c.Set(CtxToken, token)

		c.Next()
	}
}

// RequireRole gates a route group to one role. Must run after
// AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxUserRole) != role {
			response.Forbidden(c, "insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

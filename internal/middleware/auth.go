package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/campus-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/campus-scheduler/internal/httperr"
	"github.com/BruksfildServices01/campus-scheduler/internal/token"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextCaller   = "caller"
)

func AuthMiddleware(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Authentication required.")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Use a Bearer token.")
			c.Abort()
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(parts[1]), token.KindAccess)
		if err != nil {
			if errors.Is(err, token.ErrExpired) {
				httperr.Unauthorized(c, "token_expired", "Session expired.")
			} else {
				httperr.Unauthorized(c, "invalid_token", "Invalid token.")
			}
			c.Abort()
			return
		}

		userID, err := claims.UserID()
		role, ok := identity.ParseRole(claims.Role)
		if err != nil || !ok {
			httperr.Unauthorized(c, "invalid_token_payload", "Invalid token.")
			c.Abort()
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, string(role))
		c.Set(ContextCaller, identity.Caller{UserID: userID, Role: role})

		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			httperr.Unauthorized(c, "missing_authorization_header", "Authentication required.")
			c.Abort()
			return
		}
		if err := caller.Require(roles...); err != nil {
			httperr.Respond(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

func CallerFrom(c *gin.Context) (identity.Caller, bool) {
	v, ok := c.Get(ContextCaller)
	if !ok {
		return identity.Caller{}, false
	}
	caller, ok := v.(identity.Caller)
	return caller, ok
}

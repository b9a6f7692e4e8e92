package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/suratdiamond/storefront/internal/domain"
)

const userContextKey = "user"

// Authenticator resolves the caller from an Authorization header
type Authenticator interface {
	Authenticate(ctx context.Context, header string) (*domain.AuthenticatedUser, error)
}

// RoleChecker reports whether a user holds a back-office role
type RoleChecker interface {
	HasRole(ctx context.Context, userID string, role domain.Role) (bool, error)
}

// RequireUser rejects requests without a valid bearer token
func RequireUser(auth Authenticator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := auth.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			logger.Debug("Authentication failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// OptionalUser attaches the caller when a valid token is present and never rejects
func OptionalUser(auth Authenticator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); header != "" {
			if user, err := auth.Authenticate(c.Request.Context(), header); err == nil {
				c.Set(userContextKey, user)
			} else {
				logger.Debug("Ignoring invalid optional credentials", zap.Error(err))
			}
		}
		c.Next()
	}
}

// RequireRole must run after RequireUser
func RequireRole(roles RoleChecker, role domain.Role, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUserFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		allowed, err := roles.HasRole(c.Request.Context(), user.ID, role)
		if err != nil {
			logger.Error("Failed to check user role", zap.String("user_id", user.ID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		c.Next()
	}
}

// GetUserFromContext returns the user attached by RequireUser or OptionalUser
func GetUserFromContext(c *gin.Context) (*domain.AuthenticatedUser, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*domain.AuthenticatedUser)
	return user, ok
}

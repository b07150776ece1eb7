package middleware

import (
	"strings"

	"github.com/TatyanaDev/task-management-api/internal/constants"
	apierrors "github.com/TatyanaDev/task-management-api/internal/errors"
	"github.com/TatyanaDev/task-management-api/internal/models"
	"github.com/TatyanaDev/task-management-api/internal/services"
	"github.com/gin-gonic/gin"
)

// RequireAuth verifies the bearer token and resolves it to a stored
// user. Any failure, including a token whose user no longer exists,
// is a 401.
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			apierrors.Unauthorized(c, "Please authenticate")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			apierrors.Unauthorized(c, "Please authenticate")
			c.Abort()
			return
		}

		user, err := authService.ParseToken(parts[1])
		if err != nil {
			apierrors.Unauthorized(c, "Please authenticate")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUserRole, user.Role)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint64)
	return userID, ok
}

// GetUserRole retrieves the current user role from context, defaulting
// to the non-admin role when unset.
func GetUserRole(c *gin.Context) models.UserRole {
	value, exists := c.Get(constants.ContextKeyUserRole)
	if !exists {
		return models.RoleUser
	}
	role, ok := value.(models.UserRole)
	if !ok {
		return models.RoleUser
	}
	return role
}

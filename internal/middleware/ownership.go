package middleware

import (
	"strconv"

	"github.com/TatyanaDev/task-management-api/internal/constants"
	"github.com/TatyanaDev/task-management-api/internal/database"
	apierrors "github.com/TatyanaDev/task-management-api/internal/errors"
	"github.com/TatyanaDev/task-management-api/internal/models"
	"github.com/gin-gonic/gin"
)

// ParseIDParam parses the named path parameter as a numeric id,
// responding 400 and aborting on failure.
func ParseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid ID")
		c.Abort()
		return 0, false
	}
	return id, true
}

// RequireTaskAccess loads the task named by :id and enforces the
// ownership-or-admin rule. Existence is checked first so a nonexistent
// id reports 404 before any ownership decision. The loaded task is
// stashed in the context.
func RequireTaskAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := ParseIDParam(c, "id")
		if !ok {
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "Please authenticate")
			c.Abort()
			return
		}

		var task models.Task
		if err := database.GetDB().Preload("Category").First(&task, id).Error; err != nil {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		if !GetUserRole(c).IsAdmin() && task.UserID != userID {
			apierrors.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTask, task)
		c.Next()
	}
}

// RequireCategoryAccess loads the category named by :id and enforces
// the ownership-or-admin rule, 404 before 403, stashing the category
// in the context.
func RequireCategoryAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := ParseIDParam(c, "id")
		if !ok {
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "Please authenticate")
			c.Abort()
			return
		}

		var category models.Category
		if err := database.GetDB().First(&category, id).Error; err != nil {
			apierrors.NotFound(c, "Category not found")
			c.Abort()
			return
		}

		if !GetUserRole(c).IsAdmin() && category.UserID != userID {
			apierrors.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyCategory, category)
		c.Next()
	}
}

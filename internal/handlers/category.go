package handlers

import (
	"errors"
	"net/http"

	"github.com/TatyanaDev/task-management-api/internal/constants"
	"github.com/TatyanaDev/task-management-api/internal/dto"
	apierrors "github.com/TatyanaDev/task-management-api/internal/errors"
	"github.com/TatyanaDev/task-management-api/internal/middleware"
	"github.com/TatyanaDev/task-management-api/internal/models"
	"github.com/TatyanaDev/task-management-api/internal/services"
	"github.com/gin-gonic/gin"
)

// CategoryHandler coordinates category HTTP handlers.
type CategoryHandler struct {
	categoryService *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// categoryFromContext retrieves the category stashed by RequireCategoryAccess.
func categoryFromContext(c *gin.Context) (models.Category, bool) {
	value, exists := c.Get(constants.ContextKeyCategory)
	if !exists {
		apierrors.Internal(c, "Category not found in context", nil)
		return models.Category{}, false
	}
	category, ok := value.(models.Category)
	if !ok {
		apierrors.Internal(c, "Invalid category data", nil)
		return models.Category{}, false
	}
	return category, true
}

// CreateCategory creates a new category owned by the requester.
//
//	@Summary	Create a new category
//	@Tags		categories
//	@Security	BearerAuth
//	@Router		/categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Please authenticate")
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Category name is required")
		return
	}

	category, err := h.categoryService.Create(req.Name, userID)
	if err != nil {
		apierrors.Internal(c, "Error creating category", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": dto.ToCategoryDTO(*category, true)})
}

// ListCategories returns the categories visible to the requester,
// owner field stripped. An empty result is a 404.
//
//	@Summary	Get a list of categories
//	@Tags		categories
//	@Security	BearerAuth
//	@Router		/categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Please authenticate")
		return
	}

	categories, err := h.categoryService.List(userID, middleware.GetUserRole(c))
	if err != nil {
		if errors.Is(err, services.ErrNoCategories) {
			apierrors.NotFound(c, "Categories not found")
			return
		}
		apierrors.Internal(c, "Error fetching categories", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToCategoryDTOs(categories)})
}

// GetCategory returns the category loaded by RequireCategoryAccess.
//
//	@Summary	Get a category by ID
//	@Tags		categories
//	@Security	BearerAuth
//	@Router		/categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, ok := categoryFromContext(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToCategoryDTO(category, false)})
}

// UpdateCategory renames a category. Ownership is immutable.
//
//	@Summary	Update a category by ID
//	@Tags		categories
//	@Security	BearerAuth
//	@Router		/categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	category, ok := categoryFromContext(c)
	if !ok {
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Category name is required")
		return
	}

	category.Name = req.Name
	if err := h.categoryService.Update(&category); err != nil {
		apierrors.Internal(c, "Error updating category", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToCategoryDTO(category, false)})
}

// DeleteCategory removes a category and returns the deleted record.
//
//	@Summary	Delete a category by ID
//	@Tags		categories
//	@Security	BearerAuth
//	@Router		/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	category, ok := categoryFromContext(c)
	if !ok {
		return
	}

	if err := h.categoryService.Delete(category.ID); err != nil {
		apierrors.Internal(c, "Error deleting category", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToCategoryDTO(category, false)})
}

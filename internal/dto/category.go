package dto

import (
	"time"

	"github.com/TatyanaDev/task-management-api/internal/models"
)

// CategoryDTO represents a category in API responses. The owning user
// is only serialized when includeOwner is requested (creation responses);
// read endpoints strip it.
type CategoryDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	UserID    uint64    `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCategoryDTO converts a Category model to CategoryDTO.
func ToCategoryDTO(category models.Category, includeOwner bool) CategoryDTO {
	dto := CategoryDTO{
		ID:        category.ID,
		Name:      category.Name,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
	if includeOwner {
		dto.UserID = category.UserID
	}
	return dto
}

// ToCategoryDTOs converts a slice of categories, stripping the owner field.
func ToCategoryDTOs(categories []models.Category) []CategoryDTO {
	dtos := make([]CategoryDTO, len(categories))
	for i, category := range categories {
		dtos[i] = ToCategoryDTO(category, false)
	}
	return dtos
}

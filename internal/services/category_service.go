package services

import (
	"errors"

	"github.com/TatyanaDev/task-management-api/internal/models"
	"github.com/TatyanaDev/task-management-api/internal/repository"
)

var ErrNoCategories = errors.New("categories not found")

// CategoryService handles category business logic.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create persists a new category owned by the given user.
func (s *CategoryService) Create(name string, userID uint64) (*models.Category, error) {
	category := &models.Category{
		Name:   name,
		UserID: userID,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// List retrieves the categories visible to the requester: every record
// for admins, only owned records otherwise. An empty result is reported
// as ErrNoCategories.
func (s *CategoryService) List(userID uint64, role models.UserRole) ([]models.Category, error) {
	var ownerID *uint64
	if !role.IsAdmin() {
		ownerID = &userID
	}

	categories, err := s.categoryRepo.List(ownerID)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}
	return categories, nil
}

// Update persists changes to a category. The caller is responsible for
// the ownership check; the owner itself is immutable.
func (s *CategoryService) Update(category *models.Category) error {
	return s.categoryRepo.Update(category)
}

// Delete removes a category. Tasks referencing it keep their dangling
// reference.
func (s *CategoryService) Delete(id uint64) error {
	return s.categoryRepo.Delete(id)
}

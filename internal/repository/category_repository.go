package repository

import (
	"github.com/TatyanaDev/task-management-api/internal/models"
	"gorm.io/gorm"
)

// GormCategoryRepository is a GORM implementation of CategoryRepository
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &GormCategoryRepository{db: db}
}

// Create creates a new category
func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// FindByID finds a category by ID
func (r *GormCategoryRepository) FindByID(id uint64) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// List retrieves categories. A nil ownerID returns every record
// (admin listing); otherwise only the owner's records.
func (r *GormCategoryRepository) List(ownerID *uint64) ([]models.Category, error) {
	var categories []models.Category
	query := r.db.Model(&models.Category{})
	if ownerID != nil {
		query = query.Where("user_id = ?", *ownerID)
	}
	if err := query.Order("categories.created_at DESC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Update updates a category
func (r *GormCategoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// Delete soft deletes a category. Tasks referencing it are left
// untouched; their category reference dangles.
func (r *GormCategoryRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Category{}, id).Error
}

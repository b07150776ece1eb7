package repository

import (
	"github.com/TatyanaDev/task-management-api/internal/models"
)

// TaskFilter holds the optional constraints for listing tasks. All
// present constraints combine with AND; Search is a single AND-ed term
// matching title OR description case-insensitively. A nil OwnerID means
// no owner constraint (admin listing).
type TaskFilter struct {
	Status     *models.TaskStatus
	Priority   *models.TaskPriority
	CategoryID *uint64
	Search     string
	OwnerID    *uint64
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	// Create creates a new category
	Create(category *models.Category) error

	// FindByID finds a category by ID
	FindByID(id uint64) (*models.Category, error)

	// List retrieves categories, scoped to an owner unless ownerID is nil
	List(ownerID *uint64) ([]models.Category, error)

	// Update updates a category
	Update(category *models.Category) error

	// Delete soft deletes a category
	Delete(id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with its category populated
	FindByID(id uint64) (*models.Task, error)

	// List retrieves tasks matching the filter, categories populated
	List(filter TaskFilter) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete soft deletes a task
	Delete(id uint64) error
}

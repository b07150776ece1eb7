package services

import (
	"errors"

	"github.com/TatyanaDev/task-management-api/internal/models"
	"github.com/TatyanaDev/task-management-api/internal/repository"
)

var ErrNoTasks = errors.New("tasks not found")

// TaskService handles task business logic: filter construction with
// role-based owner injection, and CRUD orchestration.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// ListInput carries the optional filter parameters of a listing request
// together with the requester's identity.
type ListInput struct {
	Status     *models.TaskStatus
	Priority   *models.TaskPriority
	CategoryID *uint64
	Search     string
	UserID     uint64
	Role       models.UserRole
}

// BuildFilter translates a listing request into a repository filter.
// A non-admin requester always gets an owner constraint injected,
// regardless of any other parameters; an admin gets none.
func BuildFilter(input ListInput) repository.TaskFilter {
	filter := repository.TaskFilter{
		Status:     input.Status,
		Priority:   input.Priority,
		CategoryID: input.CategoryID,
		Search:     input.Search,
	}
	if !input.Role.IsAdmin() {
		owner := input.UserID
		filter.OwnerID = &owner
	}
	return filter
}

// List retrieves the tasks visible to the requester under the given
// filters. An empty result is reported as ErrNoTasks, not an empty
// slice.
func (s *TaskService) List(input ListInput) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(BuildFilter(input))
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}
	return tasks, nil
}

// ListByCategory retrieves the requester's tasks in a category
// (all tasks in the category for admins).
func (s *TaskService) ListByCategory(categoryID uint64, userID uint64, role models.UserRole) ([]models.Task, error) {
	return s.List(ListInput{
		CategoryID: &categoryID,
		UserID:     userID,
		Role:       role,
	})
}

// ListByPriority retrieves the requester's tasks with a priority
// (all tasks with that priority for admins).
func (s *TaskService) ListByPriority(priority models.TaskPriority, userID uint64, role models.UserRole) ([]models.Task, error) {
	return s.List(ListInput{
		Priority: &priority,
		UserID:   userID,
		Role:     role,
	})
}

// Create persists a new task and reloads it with its category populated.
func (s *TaskService) Create(task *models.Task) (*models.Task, error) {
	if task.Status == "" {
		task.Status = models.TaskStatusPending
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, err
	}
	return s.taskRepo.FindByID(task.ID)
}

// Update persists changes to a task and reloads it with its category
// populated. The caller is responsible for the ownership check.
func (s *TaskService) Update(task *models.Task) (*models.Task, error) {
	if err := s.taskRepo.Update(task); err != nil {
		return nil, err
	}
	return s.taskRepo.FindByID(task.ID)
}

// Delete removes a task.
func (s *TaskService) Delete(id uint64) error {
	return s.taskRepo.Delete(id)
}

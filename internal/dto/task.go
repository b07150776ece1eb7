package dto

import (
	"time"

	"github.com/TatyanaDev/task-management-api/internal/models"
)

// CategoryRefDTO is the populated category reference on a task.
type CategoryRefDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// TaskDTO represents a task in API responses.
type TaskDTO struct {
	ID          uint64              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      models.TaskStatus   `json:"status"`
	Priority    models.TaskPriority `json:"priority,omitempty"`
	Weather     string              `json:"weather,omitempty"`
	Category    *CategoryRefDTO     `json:"category,omitempty"`
	UserID      uint64              `json:"user_id,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// ToTaskDTO converts a Task model to TaskDTO. The owning user is only
// serialized when includeOwner is requested (create and update
// responses); read endpoints and broadcasts strip it. A dangling
// category reference yields no category object.
func ToTaskDTO(task models.Task, includeOwner bool) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		Weather:     task.Weather,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.Category != nil {
		dto.Category = &CategoryRefDTO{
			ID:   task.Category.ID,
			Name: task.Category.Name,
		}
	}
	if includeOwner {
		dto.UserID = task.UserID
	}
	return dto
}

// ToTaskDTOs converts a slice of tasks, stripping the owner field.
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task, false)
	}
	return dtos
}

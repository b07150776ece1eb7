package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/TatyanaDev/task-management-api/internal/constants"
	"github.com/TatyanaDev/task-management-api/internal/dto"
	apierrors "github.com/TatyanaDev/task-management-api/internal/errors"
	"github.com/TatyanaDev/task-management-api/internal/events"
	"github.com/TatyanaDev/task-management-api/internal/middleware"
	"github.com/TatyanaDev/task-management-api/internal/models"
	"github.com/TatyanaDev/task-management-api/internal/services"
	"github.com/gin-gonic/gin"
)

// TaskHandler coordinates task HTTP handlers. The broker is an explicit
// dependency: a successful update publishes exactly one event to it.
type TaskHandler struct {
	taskService    *services.TaskService
	weatherService *services.WeatherService
	broker         *events.Broker
}

// NewTaskHandler creates a new TaskHandler. weatherService may be nil,
// in which case tasks created without a weather field keep it empty.
func NewTaskHandler(taskService *services.TaskService, weatherService *services.WeatherService, broker *events.Broker) *TaskHandler {
	return &TaskHandler{
		taskService:    taskService,
		weatherService: weatherService,
		broker:         broker,
	}
}

// taskFromContext retrieves the task stashed by RequireTaskAccess.
func taskFromContext(c *gin.Context) (models.Task, bool) {
	value, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		apierrors.Internal(c, "Task not found in context", nil)
		return models.Task{}, false
	}
	task, ok := value.(models.Task)
	if !ok {
		apierrors.Internal(c, "Invalid task data", nil)
		return models.Task{}, false
	}
	return task, true
}

// CreateTask creates a new task owned by the requester. When the body
// carries no weather snapshot, today's forecast is looked up.
//
//	@Summary	Create a new task
//	@Tags		tasks
//	@Security	BearerAuth
//	@Router		/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Please authenticate")
		return
	}

	type CreateTaskRequest struct {
		Title       string              `json:"title" binding:"required"`
		Description string              `json:"description"`
		Status      models.TaskStatus   `json:"status" binding:"omitempty,oneof=pending in-progress completed"`
		Priority    models.TaskPriority `json:"priority" binding:"omitempty,oneof=low medium high"`
		CategoryID  *uint64             `json:"category_id"`
		Weather     string              `json:"weather"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	weather := req.Weather
	if weather == "" && h.weatherService != nil {
		weather = h.weatherService.Today(c.Request.Context())
	}

	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		CategoryID:  req.CategoryID,
		Weather:     weather,
		UserID:      userID,
	}

	created, err := h.taskService.Create(task)
	if err != nil {
		apierrors.Internal(c, "Error creating task", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": dto.ToTaskDTO(*created, true)})
}

// ListTasks returns the tasks visible to the requester under the given
// filters, owner field stripped. An empty result is a 404.
//
//	@Summary	Get a list of tasks
//	@Tags		tasks
//	@Security	BearerAuth
//	@Param		status	query	string	false	"Task status"
//	@Param		priority	query	string	false	"Task priority"
//	@Param		category	query	string	false	"Category ID"
//	@Param		search	query	string	false	"Substring of title or description"
//	@Router		/tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Please authenticate")
		return
	}

	input := services.ListInput{
		UserID: userID,
		Role:   middleware.GetUserRole(c),
		Search: c.Query("search"),
	}

	if value := c.Query("status"); value != "" {
		status := models.TaskStatus(value)
		switch status {
		case models.TaskStatusPending, models.TaskStatusInProgress, models.TaskStatusCompleted:
			input.Status = &status
		default:
			apierrors.BadRequest(c, "Invalid status value")
			return
		}
	}

	if value := c.Query("priority"); value != "" {
		priority := models.TaskPriority(value)
		if !models.ValidPriority(priority) {
			apierrors.BadRequest(c, "Invalid priority value")
			return
		}
		input.Priority = &priority
	}

	if value := c.Query("category"); value != "" {
		categoryID, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid category ID")
			return
		}
		input.CategoryID = &categoryID
	}

	tasks, err := h.taskService.List(input)
	if err != nil {
		if errors.Is(err, services.ErrNoTasks) {
			apierrors.NotFound(c, "Tasks not found")
			return
		}
		apierrors.Internal(c, "Error fetching tasks", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToTaskDTOs(tasks)})
}

// GetTask returns the task loaded by RequireTaskAccess, owner stripped.
//
//	@Summary	Get a task by ID
//	@Tags		tasks
//	@Security	BearerAuth
//	@Router		/tasks/{id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToTaskDTO(task, false)})
}

// UpdateTask applies the provided fields to the task loaded by
// RequireTaskAccess. After the store confirms the write, one
// taskUpdated event is broadcast to every connected subscriber with
// the owner field redacted. No event is published on failure.
//
//	@Summary	Update a task by ID
//	@Tags		tasks
//	@Security	BearerAuth
//	@Router		/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title       string               `json:"title" binding:"required"`
		Description *string              `json:"description"`
		Status      *models.TaskStatus   `json:"status" binding:"omitempty,oneof=pending in-progress completed"`
		Priority    *models.TaskPriority `json:"priority" binding:"omitempty,oneof=low medium high"`
		CategoryID  *uint64              `json:"category_id"`
		Weather     *string              `json:"weather"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task.Title = req.Title
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.CategoryID != nil {
		task.CategoryID = req.CategoryID
		task.Category = nil
	}
	if req.Weather != nil {
		task.Weather = *req.Weather
	}

	updated, err := h.taskService.Update(&task)
	if err != nil {
		apierrors.Internal(c, "Error updating task", err)
		return
	}

	h.broker.Publish(events.Event{
		Name:    events.TaskUpdated,
		Payload: dto.ToTaskDTO(*updated, false),
	})

	c.JSON(http.StatusOK, gin.H{"data": dto.ToTaskDTO(*updated, true)})
}

// DeleteTask removes the task loaded by RequireTaskAccess and returns
// the deleted record. Deletes are not broadcast.
//
//	@Summary	Delete a task by ID
//	@Tags		tasks
//	@Security	BearerAuth
//	@Router		/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	if err := h.taskService.Delete(task.ID); err != nil {
		apierrors.Internal(c, "Error deleting task", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToTaskDTO(task, false)})
}

// ListTasksByCategory returns the requester's tasks in a category
// (all tasks in the category for admins).
//
//	@Summary	Get a list of tasks by category
//	@Tags		tasks
//	@Security	BearerAuth
//	@Router		/tasks/category/{categoryId} [get]
func (h *TaskHandler) ListTasksByCategory(c *gin.Context) {
	categoryID, ok := middleware.ParseIDParam(c, "categoryId")
	if !ok {
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Please authenticate")
		return
	}

	tasks, err := h.taskService.ListByCategory(categoryID, userID, middleware.GetUserRole(c))
	if err != nil {
		if errors.Is(err, services.ErrNoTasks) {
			apierrors.NotFound(c, "Tasks not found")
			return
		}
		apierrors.Internal(c, "Error fetching tasks", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToTaskDTOs(tasks)})
}

// ListTasksByPriority returns the requester's tasks with a priority
// (all tasks with that priority for admins).
//
//	@Summary	Get a list of tasks by priority
//	@Tags		tasks
//	@Security	BearerAuth
//	@Router		/tasks/priority/{priority} [get]
func (h *TaskHandler) ListTasksByPriority(c *gin.Context) {
	priority := models.TaskPriority(c.Param("priority"))
	if !models.ValidPriority(priority) {
		apierrors.BadRequest(c, "Invalid priority value")
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Please authenticate")
		return
	}

	tasks, err := h.taskService.ListByPriority(priority, userID, middleware.GetUserRole(c))
	if err != nil {
		if errors.Is(err, services.ErrNoTasks) {
			apierrors.NotFound(c, "Tasks not found")
			return
		}
		apierrors.Internal(c, "Error fetching tasks", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ToTaskDTOs(tasks)})
}

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TatyanaDev/task-management-api/internal/constants"
	"github.com/TatyanaDev/task-management-api/internal/database"
	"github.com/TatyanaDev/task-management-api/internal/events"
	"github.com/TatyanaDev/task-management-api/internal/models"
	"github.com/TatyanaDev/task-management-api/internal/repository"
	"github.com/TatyanaDev/task-management-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
	broker  *events.Broker
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	suite.broker = events.NewBroker()
	taskService := services.NewTaskService(repository.NewTaskRepository(suite.db))
	suite.handler = NewTaskHandler(taskService, nil, suite.broker)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helpers to create test data

func (suite *TaskHandlerTestSuite) createTestUser(email string, role models.UserRole) *models.User {
	user := &models.User{
		Email:        email,
		PasswordHash: "hashedpassword",
		Role:         role,
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskHandlerTestSuite) createTestCategory(name string, userID uint64) *models.Category {
	category := &models.Category{
		Name:   name,
		UserID: userID,
	}
	suite.db.Create(category)
	return category
}

func (suite *TaskHandlerTestSuite) createTestTask(title, description string, userID uint64, mutate ...func(*models.Task)) *models.Task {
	task := &models.Task{
		Title:       title,
		Description: description,
		Status:      models.TaskStatusPending,
		UserID:      userID,
	}
	for _, m := range mutate {
		m(task)
	}
	suite.db.Create(task)
	return task
}

// createAuthContext builds a gin context carrying the authenticated identity
func (suite *TaskHandlerTestSuite) createAuthContext(method, url string, body []byte, user *models.User) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, user.ID)
	c.Set(constants.ContextKeyUserRole, user.Role)

	return c, w
}

func (suite *TaskHandlerTestSuite) setTaskContext(c *gin.Context, task models.Task) {
	c.Set(constants.ContextKeyTask, task)
}

func (suite *TaskHandlerTestSuite) decodeData(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	data, ok := response["data"].(map[string]interface{})
	suite.Require().True(ok, "expected data object in response")
	return data
}

func (suite *TaskHandlerTestSuite) decodeDataList(w *httptest.ResponseRecorder) []interface{} {
	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	data, ok := response["data"].([]interface{})
	suite.Require().True(ok, "expected data array in response")
	return data
}

// drainEvents returns all events currently buffered on the channel
func drainEvents(ch chan events.Event) []events.Event {
	var out []events.Event
	for {
		select {
		case e := <-ch:
			out = append(out, e)
		default:
			return out
		}
	}
}

// Create

func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	user := suite.createTestUser("user@example.com", models.RoleUser)
	category := suite.createTestCategory("Groceries", user.ID)

	body, _ := json.Marshal(map[string]interface{}{
		"title":       "Buy milk",
		"description": "Whole milk",
		"priority":    "high",
		"category_id": category.ID,
		"weather":     "light rain",
	})
	c, w := suite.createAuthContext("POST", "/api/tasks", body, user)

	suite.handler.CreateTask(c)

	suite.Equal(http.StatusCreated, w.Code)
	data := suite.decodeData(w)
	suite.Equal("Buy milk", data["title"])
	suite.Equal("pending", data["status"])
	suite.Equal("high", data["priority"])
	suite.Equal("light rain", data["weather"])
	// Creation response includes the owner
	suite.Equal(float64(user.ID), data["user_id"])
	// Category reference is populated with its name
	categoryData, ok := data["category"].(map[string]interface{})
	suite.Require().True(ok)
	suite.Equal("Groceries", categoryData["name"])
}

func (suite *TaskHandlerTestSuite) TestCreateTask_MissingTitle() {
	user := suite.createTestUser("user@example.com", models.RoleUser)

	body, _ := json.Marshal(map[string]interface{}{"description": "no title"})
	c, w := suite.createAuthContext("POST", "/api/tasks", body, user)

	suite.handler.CreateTask(c)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_InvalidStatus() {
	user := suite.createTestUser("user@example.com", models.RoleUser)

	body, _ := json.Marshal(map[string]interface{}{"title": "t", "status": "archived"})
	c, w := suite.createAuthContext("POST", "/api/tasks", body, user)

	suite.handler.CreateTask(c)

	suite.Equal(http.StatusBadRequest, w.Code)
}

// Listing and filtering

func (suite *TaskHandlerTestSuite) TestListTasks_OwnerScoping() {
	userA := suite.createTestUser("a@example.com", models.RoleUser)
	userB := suite.createTestUser("b@example.com", models.RoleUser)
	suite.createTestTask("Buy milk", "", userA.ID)

	// Owner sees the task
	c, w := suite.createAuthContext("GET", "/api/tasks?search=milk", nil, userA)
	suite.handler.ListTasks(c)
	suite.Equal(http.StatusOK, w.Code)
	suite.Len(suite.decodeDataList(w), 1)

	// Another non-admin user gets a 404, not an empty list
	c, w = suite.createAuthContext("GET", "/api/tasks?search=milk", nil, userB)
	suite.handler.ListTasks(c)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestListTasks_AdminSeesAllWithoutOwnerField() {
	userA := suite.createTestUser("a@example.com", models.RoleUser)
	userB := suite.createTestUser("b@example.com", models.RoleUser)
	admin := suite.createTestUser("admin@example.com", models.RoleAdmin)
	suite.createTestTask("Task A", "", userA.ID)
	suite.createTestTask("Task B", "", userB.ID)

	c, w := suite.createAuthContext("GET", "/api/tasks", nil, admin)
	suite.handler.ListTasks(c)

	suite.Equal(http.StatusOK, w.Code)
	tasks := suite.decodeDataList(w)
	suite.Len(tasks, 2)
	for _, item := range tasks {
		taskData := item.(map[string]interface{})
		_, hasOwner := taskData["user_id"]
		suite.False(hasOwner, "owner field must be stripped from list output")
	}
}

func (suite *TaskHandlerTestSuite) TestListTasks_SearchCaseInsensitiveOr() {
	user := suite.createTestUser("user@example.com", models.RoleUser)
	suite.createTestTask("Buy MILK", "", user.ID)
	suite.createTestTask("Groceries", "skimmed milk and eggs", user.ID)
	suite.createTestTask("Unrelated", "nothing here", user.ID)

	c, w := suite.createAuthContext("GET", "/api/tasks?search=Milk", nil, user)
	suite.handler.ListTasks(c)

	suite.Equal(http.StatusOK, w.Code)
	// Matches in title OR description, case-insensitively
	suite.Len(suite.decodeDataList(w), 2)
}

func (suite *TaskHandlerTestSuite) TestListTasks_SearchIntersectsOtherFilters() {
	user := suite.createTestUser("user@example.com", models.RoleUser)
	suite.createTestTask("Buy milk", "", user.ID, func(t *models.Task) {
		t.Status = models.TaskStatusCompleted
	})
	suite.createTestTask("More milk", "", user.ID)

	c, w := suite.createAuthContext("GET", "/api/tasks?search=milk&status=completed", nil, user)
	suite.handler.ListTasks(c)

	suite.Equal(http.StatusOK, w.Code)
	tasks := suite.decodeDataList(w)
	suite.Require().Len(tasks, 1)
	suite.Equal("Buy milk", tasks[0].(map[string]interface{})["title"])
}

func (suite *TaskHandlerTestSuite) TestListTasks_InvalidFilterValues() {
	user := suite.createTestUser("user@example.com", models.RoleUser)

	for _, query := range []string{"status=archived", "priority=urgent", "category=abc"} {
		c, w := suite.createAuthContext("GET", "/api/tasks?"+query, nil, user)
		suite.handler.ListTasks(c)
		suite.Equal(http.StatusBadRequest, w.Code, query)
	}
}

// Single resource

func (suite *TaskHandlerTestSuite) TestGetTask_StripsOwner() {
	user := suite.createTestUser("user@example.com", models.RoleUser)
	task := suite.createTestTask("Test Task", "", user.ID)

	c, w := suite.createAuthContext("GET", "/api/tasks/1", nil, user)
	suite.setTaskContext(c, *task)

	suite.handler.GetTask(c)

	suite.Equal(http.StatusOK, w.Code)
	data := suite.decodeData(w)
	suite.Equal("Test Task", data["title"])
	_, hasOwner := data["user_id"]
	suite.False(hasOwner)
}

// Update and broadcast

func (suite *TaskHandlerTestSuite) TestUpdateTask_BroadcastsExactlyOnce() {
	user := suite.createTestUser("user@example.com", models.RoleUser)
	task := suite.createTestTask("Old title", "", user.ID)

	ch := suite.broker.Subscribe()
	defer suite.broker.Unsubscribe(ch)

	body, _ := json.Marshal(map[string]interface{}{
		"title":  "Updated Title",
		"status": "completed",
	})
	c, w := suite.createAuthContext("PUT", "/api/tasks/1", body, user)
	suite.setTaskContext(c, *task)

	suite.handler.UpdateTask(c)

	suite.Equal(http.StatusOK, w.Code)
	data := suite.decodeData(w)
	suite.Equal("Updated Title", data["title"])
	suite.Equal("completed", data["status"])
	// Update response keeps the owner field
	suite.Equal(float64(user.ID), data["user_id"])

	received := drainEvents(ch)
	suite.Require().Len(received, 1)
	suite.Equal(events.TaskUpdated, received[0].Name)

	// Broadcast payload carries the new values with the owner redacted
	raw, err := json.Marshal(received[0].Payload)
	suite.Require().NoError(err)
	var broadcast map[string]interface{}
	suite.Require().NoError(json.Unmarshal(raw, &broadcast))
	suite.Equal("Updated Title", broadcast["title"])
	_, hasOwner := broadcast["user_id"]
	suite.False(hasOwner)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_ValidationFailurePublishesNothing() {
	user := suite.createTestUser("user@example.com", models.RoleUser)
	task := suite.createTestTask("Old title", "", user.ID)

	ch := suite.broker.Subscribe()
	defer suite.broker.Unsubscribe(ch)

	body, _ := json.Marshal(map[string]interface{}{"status": "completed"}) // missing title
	c, w := suite.createAuthContext("PUT", "/api/tasks/1", body, user)
	suite.setTaskContext(c, *task)

	suite.handler.UpdateTask(c)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Empty(drainEvents(ch))
}

// Delete

func (suite *TaskHandlerTestSuite) TestDeleteTask_NoBroadcast() {
	user := suite.createTestUser("user@example.com", models.RoleUser)
	task := suite.createTestTask("To delete", "", user.ID)

	ch := suite.broker.Subscribe()
	defer suite.broker.Unsubscribe(ch)

	c, w := suite.createAuthContext("DELETE", "/api/tasks/1", nil, user)
	suite.setTaskContext(c, *task)

	suite.handler.DeleteTask(c)

	suite.Equal(http.StatusOK, w.Code)
	suite.Empty(drainEvents(ch))

	var found models.Task
	err := suite.db.First(&found, task.ID).Error
	assert.ErrorIs(suite.T(), err, gorm.ErrRecordNotFound)
}

// Listing by category and priority

func (suite *TaskHandlerTestSuite) TestListTasksByCategory() {
	user := suite.createTestUser("user@example.com", models.RoleUser)
	other := suite.createTestUser("other@example.com", models.RoleUser)
	admin := suite.createTestUser("admin@example.com", models.RoleAdmin)
	category := suite.createTestCategory("Work", user.ID)

	suite.createTestTask("Mine", "", user.ID, func(t *models.Task) {
		t.CategoryID = &category.ID
	})
	suite.createTestTask("Theirs", "", other.ID, func(t *models.Task) {
		t.CategoryID = &category.ID
	})

	c, w := suite.createAuthContext("GET", "/api/tasks/category/1", nil, user)
	c.Params = gin.Params{{Key: "categoryId", Value: "1"}}
	suite.handler.ListTasksByCategory(c)
	suite.Equal(http.StatusOK, w.Code)
	suite.Len(suite.decodeDataList(w), 1)

	c, w = suite.createAuthContext("GET", "/api/tasks/category/1", nil, admin)
	c.Params = gin.Params{{Key: "categoryId", Value: "1"}}
	suite.handler.ListTasksByCategory(c)
	suite.Equal(http.StatusOK, w.Code)
	suite.Len(suite.decodeDataList(w), 2)
}

func (suite *TaskHandlerTestSuite) TestListTasksByCategory_InvalidID() {
	user := suite.createTestUser("user@example.com", models.RoleUser)

	c, w := suite.createAuthContext("GET", "/api/tasks/category/abc", nil, user)
	c.Params = gin.Params{{Key: "categoryId", Value: "abc"}}
	suite.handler.ListTasksByCategory(c)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestListTasksByPriority() {
	user := suite.createTestUser("user@example.com", models.RoleUser)
	suite.createTestTask("Important", "", user.ID, func(t *models.Task) {
		t.Priority = models.TaskPriorityHigh
	})
	suite.createTestTask("Whenever", "", user.ID, func(t *models.Task) {
		t.Priority = models.TaskPriorityLow
	})

	c, w := suite.createAuthContext("GET", "/api/tasks/priority/high", nil, user)
	c.Params = gin.Params{{Key: "priority", Value: "high"}}
	suite.handler.ListTasksByPriority(c)

	suite.Equal(http.StatusOK, w.Code)
	tasks := suite.decodeDataList(w)
	suite.Require().Len(tasks, 1)
	suite.Equal("Important", tasks[0].(map[string]interface{})["title"])
}

func (suite *TaskHandlerTestSuite) TestListTasksByPriority_InvalidValue() {
	user := suite.createTestUser("user@example.com", models.RoleUser)

	c, w := suite.createAuthContext("GET", "/api/tasks/priority/urgent", nil, user)
	c.Params = gin.Params{{Key: "priority", Value: "urgent"}}
	suite.handler.ListTasksByPriority(c)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestListTasksByPriority_Empty() {
	user := suite.createTestUser("user@example.com", models.RoleUser)

	c, w := suite.createAuthContext("GET", "/api/tasks/priority/high", nil, user)
	c.Params = gin.Params{{Key: "priority", Value: "high"}}
	suite.handler.ListTasksByPriority(c)

	suite.Equal(http.StatusNotFound, w.Code)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}

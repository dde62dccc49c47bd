package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Verm1lion/SwarmOPS/internal/board"
	"github.com/Verm1lion/SwarmOPS/internal/constants"
	"github.com/Verm1lion/SwarmOPS/internal/database"
	"github.com/Verm1lion/SwarmOPS/internal/dto"
	"github.com/Verm1lion/SwarmOPS/internal/middleware"
	"github.com/Verm1lion/SwarmOPS/internal/models"
	"github.com/Verm1lion/SwarmOPS/internal/repository"
	"github.com/Verm1lion/SwarmOPS/internal/services"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	boards  *board.Manager
	handler *TaskHandler
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.Comment{},
		&models.ActivityEntry{},
	)
	suite.Require().NoError(err)

	// Set the test DB as the default database
	database.SetDB(suite.db)

	taskRepo := repository.NewTaskRepository(suite.db)
	activityRepo := repository.NewActivityRepository(suite.db)
	suite.boards = board.NewManager(taskRepo, taskRepo)

	activityService := services.NewActivityService(activityRepo)
	taskService := services.NewTaskService(taskRepo, suite.boards, activityService)
	suite.handler = NewTaskHandler(taskService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	suite.boards.Shutdown()

	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data
func (suite *TaskHandlerTestSuite) createTestProject(name string) *models.Project {
	project := &models.Project{
		Name:       name,
		AccessCode: "CODE42",
		UserID:     1,
	}
	suite.db.Create(project)
	return project
}

func (suite *TaskHandlerTestSuite) createTestTask(title string, projectID uint64, column models.ColumnID) *models.Task {
	task := &models.Task{
		Title:     title,
		ProjectID: projectID,
		ColumnID:  column,
		Priority:  models.PriorityMedium,
		CreatedBy: "Owner",
	}
	suite.db.Create(task)
	return task
}

// createProjectContext builds an authenticated admin request with the project
// preloaded, simulating RequireAuth and RequireProjectAccess
func (suite *TaskHandlerTestSuite) createProjectContext(method, url string, body []byte, project *models.Project) (*gin.Context, *httptest.ResponseRecorder) {
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
	c.Set(constants.ContextKeyIdentity, middleware.Identity{UserID: 1, UserName: "Owner"})
	if project != nil {
		c.Set(constants.ContextKeyProject, *project)
	}

	return c, w
}

func (suite *TaskHandlerTestSuite) setTaskContext(c *gin.Context, task models.Task) {
	c.Set("task", task)
}

func (suite *TaskHandlerTestSuite) flushBoard(projectID uint64) {
	b, err := suite.boards.Get(projectID)
	suite.Require().NoError(err)
	b.Flush()
}

// TestCreateTask_Success tests task creation with default column and priority
func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	project := suite.createTestProject("Test Project")

	requestBody := map[string]interface{}{
		"title":       "New Task",
		"description": "Task Description",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createProjectContext("POST", "/api/projects/1/tasks", body, project)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.TaskDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "New Task", response.Title)
	assert.Equal(suite.T(), models.ColumnIdea, response.ColumnID)
	assert.Equal(suite.T(), models.PriorityMedium, response.Priority)
	assert.Equal(suite.T(), "Owner", response.CreatedBy)
	assert.Nil(suite.T(), response.CompletedAt)
}

// TestCreateTask_InDoneColumn tests that tasks created directly in DONE get
// a completion timestamp
func (suite *TaskHandlerTestSuite) TestCreateTask_InDoneColumn() {
	project := suite.createTestProject("Test Project")

	requestBody := map[string]interface{}{
		"title":     "Already Finished",
		"column_id": "DONE",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createProjectContext("POST", "/api/projects/1/tasks", body, project)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.TaskDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response.CompletedAt)
}

// TestCreateTask_MissingTitle tests task creation without a title
func (suite *TaskHandlerTestSuite) TestCreateTask_MissingTitle() {
	project := suite.createTestProject("Test Project")

	requestBody := map[string]interface{}{
		"description": "No title",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createProjectContext("POST", "/api/projects/1/tasks", body, project)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateTask_InvalidColumn tests task creation with an unknown column
func (suite *TaskHandlerTestSuite) TestCreateTask_InvalidColumn() {
	project := suite.createTestProject("Test Project")

	requestBody := map[string]interface{}{
		"title":     "New Task",
		"column_id": "BACKLOG",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createProjectContext("POST", "/api/projects/1/tasks", body, project)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestListTasks_Success tests paginated task listing
func (suite *TaskHandlerTestSuite) TestListTasks_Success() {
	project := suite.createTestProject("Test Project")
	suite.createTestTask("First", project.ID, models.ColumnTodo)
	suite.createTestTask("Second", project.ID, models.ColumnDone)

	c, w := suite.createProjectContext("GET", "/api/projects/1/tasks", nil, project)

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Contains(suite.T(), response, "tasks")
	assert.Contains(suite.T(), response, "pagination")

	tasks := response["tasks"].([]interface{})
	assert.Len(suite.T(), tasks, 2)
}

// TestListTasks_ColumnFilter tests listing filtered by column
func (suite *TaskHandlerTestSuite) TestListTasks_ColumnFilter() {
	project := suite.createTestProject("Test Project")
	suite.createTestTask("Open", project.ID, models.ColumnTodo)
	suite.createTestTask("Finished", project.ID, models.ColumnDone)

	c, w := suite.createProjectContext("GET", "/api/projects/1/tasks", nil, project)
	c.Request.URL.RawQuery = "column=DONE"

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	tasks := response["tasks"].([]interface{})
	assert.Len(suite.T(), tasks, 1)
	first := tasks[0].(map[string]interface{})
	assert.Equal(suite.T(), "Finished", first["title"])
}

// TestGetTask_Success tests single task retrieval
func (suite *TaskHandlerTestSuite) TestGetTask_Success() {
	project := suite.createTestProject("Test Project")
	task := suite.createTestTask("Test Task", project.ID, models.ColumnTodo)

	c, w := suite.createProjectContext("GET", "/api/tasks/1", nil, project)
	suite.setTaskContext(c, *task)

	suite.handler.GetTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TaskDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), task.ID, response.ID)
	assert.Equal(suite.T(), task.Title, response.Title)
	// Nil slices come back as empty lists, not null
	assert.NotNil(suite.T(), response.Labels)
	assert.NotNil(suite.T(), response.MediaURLs)
}

// TestGetTask_NotFoundInContext tests when task is not in context
func (suite *TaskHandlerTestSuite) TestGetTask_NotFoundInContext() {
	c, w := suite.createProjectContext("GET", "/api/tasks/1", nil, nil)

	suite.handler.GetTask(c)

	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
}

// TestUpdateTask_Success tests a partial field patch
func (suite *TaskHandlerTestSuite) TestUpdateTask_Success() {
	project := suite.createTestProject("Test Project")
	task := suite.createTestTask("Old Title", project.ID, models.ColumnTodo)

	requestBody := map[string]interface{}{
		"title":    "Updated Title",
		"priority": "HIGH",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createProjectContext("PATCH", "/api/tasks/1", body, project)
	suite.setTaskContext(c, *task)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TaskDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Updated Title", response.Title)
	assert.Equal(suite.T(), models.PriorityHigh, response.Priority)
	// Untouched fields survive
	assert.Equal(suite.T(), models.ColumnTodo, response.ColumnID)
}

// TestUpdateTask_ColumnToDone tests that a column patch into DONE stamps the
// completion time durably
func (suite *TaskHandlerTestSuite) TestUpdateTask_ColumnToDone() {
	project := suite.createTestProject("Test Project")
	task := suite.createTestTask("Almost Done", project.ID, models.ColumnInProgress)

	requestBody := map[string]interface{}{
		"column_id": "DONE",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createProjectContext("PATCH", "/api/tasks/1", body, project)
	suite.setTaskContext(c, *task)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var stored models.Task
	err := suite.db.First(&stored, task.ID).Error
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ColumnDone, stored.ColumnID)
	assert.NotNil(suite.T(), stored.CompletedAt)
}

// TestUpdateTask_ClearDueDate tests the explicit clear flag
func (suite *TaskHandlerTestSuite) TestUpdateTask_ClearDueDate() {
	project := suite.createTestProject("Test Project")
	dueDate := time.Now().Add(24 * time.Hour)
	task := suite.createTestTask("Task with Due Date", project.ID, models.ColumnTodo)
	task.DueDate = &dueDate
	suite.db.Save(task)

	requestBody := map[string]interface{}{
		"clear_due_date": true,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createProjectContext("PATCH", "/api/tasks/1", body, project)
	suite.setTaskContext(c, *task)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TaskDTO
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), response.DueDate)
}

// TestUpdateTask_InvalidRequest tests update with a malformed body
func (suite *TaskHandlerTestSuite) TestUpdateTask_InvalidRequest() {
	project := suite.createTestProject("Test Project")
	task := suite.createTestTask("Test Task", project.ID, models.ColumnTodo)

	c, w := suite.createProjectContext("PATCH", "/api/tasks/1", []byte("invalid json"), project)
	suite.setTaskContext(c, *task)

	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestDeleteTask_Success tests task deletion through the board
func (suite *TaskHandlerTestSuite) TestDeleteTask_Success() {
	project := suite.createTestProject("Test Project")
	task := suite.createTestTask("Task to Delete", project.ID, models.ColumnTodo)

	c, w := suite.createProjectContext("DELETE", "/api/tasks/1", nil, project)
	suite.setTaskContext(c, *task)

	suite.handler.DeleteTask(c)
	suite.flushBoard(project.ID)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Task deleted successfully", response["message"])

	// Verify task is soft deleted
	var deleted models.Task
	err = suite.db.First(&deleted, task.ID).Error
	assert.Error(suite.T(), err)
}

// TestDeleteTask_Unknown tests deleting a task the board does not hold
func (suite *TaskHandlerTestSuite) TestDeleteTask_Unknown() {
	project := suite.createTestProject("Test Project")

	c, w := suite.createProjectContext("DELETE", "/api/tasks/99", nil, project)
	suite.setTaskContext(c, models.Task{ID: 99, ProjectID: project.ID})

	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestSuite runs the test suite
func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}

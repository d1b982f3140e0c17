package v1

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ekovalev/go-taskhub/internal/models"
	"github.com/ekovalev/go-taskhub/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuthService struct {
	registerResult *services.AuthResult
	registerErr    error
	registerParams services.RegisterParams

	loginResult *services.AuthResult
	loginErr    error
	loginParams services.LoginParams

	user    *models.User
	userErr error

	parseUserID string
	parseErr    error
	parsedToken string
}

func (f *fakeAuthService) Register(_ context.Context, params services.RegisterParams) (*services.AuthResult, error) {
	f.registerParams = params
	return f.registerResult, f.registerErr
}

func (f *fakeAuthService) Login(_ context.Context, params services.LoginParams) (*services.AuthResult, error) {
	f.loginParams = params
	return f.loginResult, f.loginErr
}

func (f *fakeAuthService) GetUserByID(_ context.Context, _ string) (*models.User, error) {
	return f.user, f.userErr
}

func (f *fakeAuthService) IssueToken(_ string) (string, time.Time, error) {
	return "", time.Time{}, nil
}

func (f *fakeAuthService) ParseToken(token string) (string, error) {
	f.parsedToken = token
	return f.parseUserID, f.parseErr
}

type fakeTaskService struct {
	task *models.Task
	err  error

	listTasks  []*models.Task
	listTotal  int64
	listErr    error
	listUserID string
	listParams services.ListTasksParams

	createUserID string
	createParams services.CreateTaskParams

	updateUserID string
	updateTaskID int64
	updateParams services.UpdateTaskParams

	completedTaskID int64
	deletedTaskID   int64
}

func (f *fakeTaskService) CreateTask(_ context.Context, userID string, params services.CreateTaskParams) (*models.Task, error) {
	f.createUserID = userID
	f.createParams = params
	return f.task, f.err
}

func (f *fakeTaskService) GetTask(_ context.Context, _ string, _ int64) (*models.Task, error) {
	return f.task, f.err
}

func (f *fakeTaskService) ListTasks(_ context.Context, userID string, params services.ListTasksParams) ([]*models.Task, int64, error) {
	f.listUserID = userID
	f.listParams = params
	return f.listTasks, f.listTotal, f.listErr
}

func (f *fakeTaskService) UpdateTask(_ context.Context, userID string, taskID int64, params services.UpdateTaskParams) (*models.Task, error) {
	f.updateUserID = userID
	f.updateTaskID = taskID
	f.updateParams = params
	return f.task, f.err
}

func (f *fakeTaskService) DeleteTask(_ context.Context, _ string, taskID int64) (*models.Task, error) {
	f.deletedTaskID = taskID
	return f.task, f.err
}

func (f *fakeTaskService) CompleteTask(_ context.Context, _ string, taskID int64) (*models.Task, error) {
	f.completedTaskID = taskID
	return f.task, f.err
}

func newTestRouter(auth services.AuthService, tasks services.TaskService) *gin.Engine {
	handler := New(zerolog.Nop(), auth, tasks)

	router := gin.New()
	api := router.Group("/api")
	api.GET("/health", handler.HandleHealth)

	authRouter := api.Group("/auth")
	authRouter.POST("/signup", handler.HandleSignUp)
	authRouter.POST("/signin", handler.HandleSignIn)
	authRouter.POST("/signout", handler.HandleSignOut)
	authRouter.GET("/me", handler.HandleAuthMiddleware, handler.HandleMe)

	taskRouter := api.Group("/tasks", handler.HandleAuthMiddleware)
	taskRouter.POST("/", handler.HandleCreateTask)
	taskRouter.GET("/", handler.HandleListTasks)
	taskRouter.GET("/:id", handler.HandleGetTask)
	taskRouter.PUT("/:id", handler.HandleUpdateTask)
	taskRouter.DELETE("/:id", handler.HandleDeleteTask)
	taskRouter.PATCH("/:id/complete", handler.HandleCompleteTask)

	return router
}

func performRequest(router *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response body %q: %v", w.Body.String(), err)
	}
}

func bearerHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func testTask(id int64, userID string) *models.Task {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &models.Task{
		ID:          id,
		UserID:      userID,
		Title:       "write report",
		Description: "quarterly numbers",
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

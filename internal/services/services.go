package services

import (
	"context"
	"errors"
	"time"

	"github.com/ekovalev/go-taskhub/internal/models"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrUserPasswordMismatch = errors.New("user password mismatch")
	ErrTaskNotFound         = errors.New("task not found")
	ErrTokenInvalid         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token expired")
)

type AuthService interface {
	// Register creates a user with the given email, password
	// and optional display name, then issues an access token.
	//
	// It returns ErrUserAlreadyExists if a user with the
	// given email already exists; no row is created then.
	Register(ctx context.Context, params RegisterParams) (*AuthResult, error)

	// Login authenticates the user by email and password
	// and issues a fresh access token.
	//
	// It returns ErrUserNotFound if the user with the given
	// email doesn't exist or ErrUserPasswordMismatch if the
	// given password doesn't match the user's password.
	Login(ctx context.Context, params LoginParams) (*AuthResult, error)

	// GetUserByID returns the user with the given ID
	// or ErrUserNotFound if the row is gone.
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// IssueToken signs a stateless access token carrying the
	// given user ID. There is no server-side token storage and
	// no revocation; the token stays valid until it expires.
	IssueToken(userID string) (string, time.Time, error)

	// ParseToken verifies the token signature and expiration and
	// returns the embedded user ID. It returns ErrTokenExpired
	// for an expired token and ErrTokenInvalid for anything else
	// that fails to parse or verify. The user is not looked up.
	ParseToken(token string) (string, error)
}

type TaskService interface {
	// CreateTask inserts a task owned by userID. The owner is
	// always the resolved caller identity, never request data.
	CreateTask(ctx context.Context, userID string, params CreateTaskParams) (*models.Task, error)

	// GetTask returns the task with the given ID if it exists
	// and is owned by userID. A missing task and a task owned
	// by someone else are both reported as ErrTaskNotFound.
	GetTask(ctx context.Context, userID string, taskID int64) (*models.Task, error)

	// ListTasks returns a filtered, sorted page of the user's
	// tasks together with the total size of the filtered set
	// (independent of the page window).
	ListTasks(ctx context.Context, userID string, params ListTasksParams) ([]*models.Task, int64, error)

	// UpdateTask applies only the non-nil fields of params to
	// the task and unconditionally refreshes its updated_at
	// timestamp. It returns ErrTaskNotFound without writing
	// anything if the task is absent or owned by someone else.
	UpdateTask(ctx context.Context, userID string, taskID int64, params UpdateTaskParams) (*models.Task, error)

	// DeleteTask removes the task and returns its pre-deletion
	// snapshot, or ErrTaskNotFound.
	DeleteTask(ctx context.Context, userID string, taskID int64) (*models.Task, error)

	// CompleteTask marks the task completed. Sugar for
	// UpdateTask with only the completed flag set.
	CompleteTask(ctx context.Context, userID string, taskID int64) (*models.Task, error)
}

type RegisterParams struct {
	Email    string
	Password string
	Name     string
}

type LoginParams struct {
	Email    string
	Password string
}

type AuthResult struct {
	User           *models.User
	AccessToken    string
	TokenExpiresAt time.Time
}

type CreateTaskParams struct {
	Title       string
	Description string
	Completed   bool
}

type ListTasksParams struct {
	Status string
	Sort   string
	Offset int
	Limit  int
}

type UpdateTaskParams struct {
	Title       *string
	Description *string
	Completed   *bool
}

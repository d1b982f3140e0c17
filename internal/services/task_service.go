package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/ekovalev/go-taskhub/internal/models"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewTaskService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, userID string, params CreateTaskParams) (*models.Task, error) {
	now := time.Now()
	task := &models.Task{
		UserID:      userID,
		Title:       params.Title,
		Description: params.Description,
		Completed:   params.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	const insertTaskQuery = `
INSERT INTO tasks (user_id,
                   title,
                   description,
                   completed,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`
	err := s.pgPool.QueryRow(
		ctx,
		insertTaskQuery,
		task.UserID,
		task.Title,
		task.Description,
		task.Completed,
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}
	s.logger.Debug().
		Int64("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("inserted task")

	s.logger.Info().
		Int64("task_id", task.ID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, userID string, taskID int64) (*models.Task, error) {
	task := &models.Task{
		ID:     taskID,
		UserID: userID,
	}

	const selectTaskQuery = `
SELECT title,
       description,
       completed,
       created_at,
       updated_at
FROM tasks
WHERE id = $1 AND user_id = $2
`
	err := s.pgPool.QueryRow(
		ctx,
		selectTaskQuery,
		task.ID,
		task.UserID,
	).Scan(
		&task.Title,
		&task.Description,
		&task.Completed,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Debug().
				Int64("task_id", task.ID).
				Str("user_id", task.UserID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Msg("failed to select task")
		return nil, err
	}

	return task, nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, userID string, params ListTasksParams) ([]*models.Task, int64, error) {
	filter := statusClause(params.Status)

	countQuery := `
SELECT COUNT(*)
FROM tasks
WHERE user_id = $1` + filter

	var total int64
	err := s.pgPool.QueryRow(
		ctx,
		countQuery,
		userID,
	).Scan(&total)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to count tasks")
		return nil, 0, err
	}

	selectQuery := `
SELECT id,
       title,
       description,
       completed,
       created_at,
       updated_at
FROM tasks
WHERE user_id = $1` + filter + orderClause(params.Sort) + `
LIMIT $2 OFFSET $3`

	rows, err := s.pgPool.Query(
		ctx,
		selectQuery,
		userID,
		params.Limit,
		params.Offset,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to select tasks")
		return nil, 0, err
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0, params.Limit)
	for rows.Next() {
		task := &models.Task{UserID: userID}
		err = rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Completed,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, 0, err
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, 0, err
	}

	s.logger.Debug().
		Int("count", len(tasks)).
		Int64("total", total).
		Str("user_id", userID).
		Msg("selected tasks")
	return tasks, total, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, userID string, taskID int64, params UpdateTaskParams) (*models.Task, error) {
	task, err := s.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	applyTaskUpdate(task, params, time.Now())

	const updateTaskQuery = `
UPDATE tasks
SET title = $1,
    description = $2,
    completed = $3,
    updated_at = $4
WHERE id = $5 AND user_id = $6
`
	_, err = s.pgPool.Exec(
		ctx,
		updateTaskQuery,
		task.Title,
		task.Description,
		task.Completed,
		task.UpdatedAt,
		task.ID,
		task.UserID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Msg("failed to update task")
		return nil, err
	}
	s.logger.Debug().
		Int64("task_id", task.ID).
		Msg("updated task")

	s.logger.Info().
		Int64("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, userID string, taskID int64) (*models.Task, error) {
	task, err := s.GetTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1 AND user_id = $2
`
	tag, err := s.pgPool.Exec(
		ctx,
		deleteTaskQuery,
		task.ID,
		task.UserID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Msg("failed to delete task")
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		// The row disappeared between the select and the delete.
		s.logger.Debug().
			Int64("task_id", task.ID).
			Msg("task already deleted")
		return nil, ErrTaskNotFound
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("deleted task")
	return task, nil
}

func (s *taskServiceImpl) CompleteTask(ctx context.Context, userID string, taskID int64) (*models.Task, error) {
	completed := true
	return s.UpdateTask(ctx, userID, taskID, UpdateTaskParams{Completed: &completed})
}

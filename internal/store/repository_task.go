package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/taskquery"
	"github.com/MKhiriev/go-task-keeper/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// taskRepository is the PostgreSQL-backed implementation of [TaskRepository].
type taskRepository struct {
	logger *logger.Logger
	db     pgxQuerier
}

func NewTaskRepository(db pgxQuerier, logger *logger.Logger) TaskRepository {
	logger.Debug().Msg("creating task repository")
	return &taskRepository{
		db:     db,
		logger: logger,
	}
}

func (r *taskRepository) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	tags := task.Tags
	if tags == nil {
		tags = []string{}
	}

	row := r.db.QueryRow(ctx, createTask, task.ID, task.UserID, task.Title, task.Done, task.DueDate, tags)
	created, err := scanTask(row)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*taskRepository.CreateTask").Msg("error inserting task")
		return models.Task{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

func (r *taskRepository) GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (models.Task, error) {
	task, err := scanTask(r.db.QueryRow(ctx, getTask, taskID, ownerID))
	if err != nil {
		return models.Task{}, r.rowError(ctx, "*taskRepository.GetTask", err)
	}

	return task, nil
}

func (r *taskRepository) ListTasks(ctx context.Context, spec taskquery.Spec) ([]models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListTasksQuery(spec)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.ListTasks").Msg("error building query")
		return nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.ListTasks").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	tasks := make([]models.Task, 0, spec.Limit)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Err(err).Str("func", "*taskRepository.ListTasks").Msg("error scanning rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		tasks = append(tasks, task)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*taskRepository.ListTasks").Msg("error iterating rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return tasks, nil
}

func (r *taskRepository) CountTasks(ctx context.Context, filter taskquery.Filter) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountTasksQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.CountTasks").Msg("error building query")
		return 0, err
	}

	var total int64
	if err = r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*taskRepository.CountTasks").Msg("error counting tasks")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return total, nil
}

func (r *taskRepository) UpdateTask(ctx context.Context, update models.TaskUpdate) (models.Task, error) {
	query, args, err := buildUpdateTaskQuery(update)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*taskRepository.UpdateTask").Msg("error building query")
		return models.Task{}, err
	}

	task, err := scanTask(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return models.Task{}, r.rowError(ctx, "*taskRepository.UpdateTask", err)
	}

	return task, nil
}

func (r *taskRepository) DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) (uuid.UUID, error) {
	var deletedID uuid.UUID
	if err := r.db.QueryRow(ctx, deleteTask, taskID, ownerID).Scan(&deletedID); err != nil {
		return uuid.Nil, r.rowError(ctx, "*taskRepository.DeleteTask", err)
	}

	return deletedID, nil
}

// rowError maps a single-row failure: no row means the task does not exist
// for this owner.
func (r *taskRepository) rowError(ctx context.Context, funcName string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrTaskNotFound
	}
	logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("error executing query")
	return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
}

func scanTask(row pgx.Row) (models.Task, error) {
	var task models.Task
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Done,
		&task.DueDate,
		&task.Tags,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if task.Tags == nil {
		task.Tags = []string{}
	}
	return task, err
}

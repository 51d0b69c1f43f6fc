package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-task-keeper/internal/taskquery"
	"github.com/MKhiriev/go-task-keeper/models"
	"github.com/google/uuid"
)

// UserRepository persists user accounts. Username and email uniqueness is
// enforced by the database.
type UserRepository interface {
	// CreateUser inserts the user and returns the stored row.
	// Returns ErrUserAlreadyExists on a unique violation.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// UserExists reports whether a user with the username or the email exists.
	UserExists(ctx context.Context, username, email string) (bool, error)

	FindUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
}

// TaskRepository persists tasks. Every method that addresses a single task
// filters by both task id and owner id.
type TaskRepository interface {
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)
	GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (models.Task, error)

	// ListTasks returns one page of tasks matching the spec.
	ListTasks(ctx context.Context, spec taskquery.Spec) ([]models.Task, error)
	// CountTasks returns the number of tasks matching the filter.
	CountTasks(ctx context.Context, filter taskquery.Filter) (int64, error)

	UpdateTask(ctx context.Context, update models.TaskUpdate) (models.Task, error)
	// DeleteTask removes the task and returns its id.
	DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) (uuid.UUID, error)
}

// TaskListCache caches task listing pages per owner.
//
// Pages are stored under the owner's generation. Invalidate moves the owner
// to a new generation, so pages read or written under an older one are
// never served again. Callers read the generation before querying the
// database and store the result under that same generation.
type TaskListCache interface {
	Generation(ctx context.Context, ownerID uuid.UUID) (int64, error)
	// GetPage returns the cached page; ok is false on a miss.
	GetPage(ctx context.Context, generation int64, spec taskquery.Spec) (page models.TaskPage, ok bool, err error)
	SetPage(ctx context.Context, generation int64, spec taskquery.Spec, page models.TaskPage) error
	Invalidate(ctx context.Context, ownerID uuid.UUID) error
}

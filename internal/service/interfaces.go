package service

import (
	"context"
	"net/url"

	"github.com/MKhiriev/go-task-keeper/models"
	"github.com/google/uuid"
)

type AuthService interface {
	Register(ctx context.Context, in models.RegisterInput) (models.AuthResult, error)
	Login(ctx context.Context, in models.LoginInput) (models.AuthResult, error)

	// Authenticate resolves a raw session token to the identity of an
	// existing user.
	Authenticate(ctx context.Context, token string) (models.Identity, error)
}

// TokenService issues and verifies stateless session tokens.
type TokenService interface {
	Issue(ctx context.Context, userID uuid.UUID) (models.Token, error)
	// Verify returns the user id of a valid token, ErrTokenExpired for an
	// expired one and ErrTokenInvalid otherwise.
	Verify(ctx context.Context, token string) (uuid.UUID, error)
}

// TaskService manages the tasks of a single owner. Task ids are passed as
// received from the client and must parse as UUIDs.
type TaskService interface {
	List(ctx context.Context, ownerID uuid.UUID, params url.Values) (models.TaskList, error)
	Create(ctx context.Context, ownerID uuid.UUID, in models.TaskInput) (models.Task, error)
	Get(ctx context.Context, ownerID uuid.UUID, taskID string) (models.Task, error)
	Update(ctx context.Context, ownerID uuid.UUID, taskID string, in models.TaskInput) (models.Task, error)
	Delete(ctx context.Context, ownerID uuid.UUID, taskID string) (uuid.UUID, error)
}

// TaskServiceWrapper defines middleware composition for TaskService.
// Implementations wrap an existing TaskService to add behavior such as
// logging or validating.
type TaskServiceWrapper interface {
	Wrap(TaskService) TaskService // returns a decorated TaskService applying additional behavior
}

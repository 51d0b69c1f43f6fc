package service

import (
	"context"
	"net/url"

	"github.com/MKhiriev/go-task-keeper/internal/validators"
	"github.com/MKhiriev/go-task-keeper/models"
	"github.com/google/uuid"
)

// TaskValidationService rejects malformed task requests before they reach
// the wrapped TaskService.
type TaskValidationService struct {
	inner     TaskService
	validator validators.Validator
}

func NewTaskValidationService() TaskServiceWrapper {
	return &TaskValidationService{
		validator: validators.NewTaskValidator(),
	}
}

func (v *TaskValidationService) List(ctx context.Context, ownerID uuid.UUID, params url.Values) (models.TaskList, error) {
	return v.inner.List(ctx, ownerID, params)
}

func (v *TaskValidationService) Create(ctx context.Context, ownerID uuid.UUID, in models.TaskInput) (models.Task, error) {
	in = normalizeTaskInput(in)
	if err := v.validator.Validate(ctx, in); err != nil {
		return models.Task{}, newValidationError(err)
	}

	return v.inner.Create(ctx, ownerID, in)
}

func (v *TaskValidationService) Get(ctx context.Context, ownerID uuid.UUID, taskID string) (models.Task, error) {
	if _, err := parseTaskID(taskID); err != nil {
		return models.Task{}, err
	}

	return v.inner.Get(ctx, ownerID, taskID)
}

func (v *TaskValidationService) Update(ctx context.Context, ownerID uuid.UUID, taskID string, in models.TaskInput) (models.Task, error) {
	if _, err := parseTaskID(taskID); err != nil {
		return models.Task{}, err
	}

	in = normalizeTaskInput(in)
	fields := []string{validators.FieldDueDate}
	if in.Title != nil {
		fields = append(fields, validators.FieldTitle)
	}
	if err := v.validator.Validate(ctx, in, fields...); err != nil {
		return models.Task{}, newValidationError(err)
	}

	return v.inner.Update(ctx, ownerID, taskID, in)
}

func (v *TaskValidationService) Delete(ctx context.Context, ownerID uuid.UUID, taskID string) (uuid.UUID, error) {
	if _, err := parseTaskID(taskID); err != nil {
		return uuid.Nil, err
	}

	return v.inner.Delete(ctx, ownerID, taskID)
}

func (v *TaskValidationService) Wrap(wrapped TaskService) TaskService {
	v.inner = wrapped
	return v
}

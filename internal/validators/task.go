package validators

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-task-keeper/models"
	"github.com/google/uuid"
)

// Field name constants used to restrict task validation to a subset of
// fields.
const (
	// FieldTitle checks that the title is present, non-blank and at most 200
	// characters long.
	FieldTitle = "title"
	// FieldDueDate checks that a provided due date could be parsed.
	FieldDueDate = "dueDate"
	// FieldTaskID checks that a task reference carries an id.
	FieldTaskID = "id"
	// FieldUserID checks that a task reference carries an owner.
	FieldUserID = "userId"
	// FieldChanges checks that an update changes at least one field.
	FieldChanges = "changes"
)

var taskInputFields = []string{FieldTitle, FieldDueDate}
var taskUpdateFields = []string{FieldTaskID, FieldUserID, FieldTitle, FieldChanges}

type TaskValidator struct {
}

func NewTaskValidator() Validator {
	return &TaskValidator{}
}

func (v *TaskValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.TaskInput:
		return v.validateTaskInput(value, fields...)
	case *models.TaskInput:
		return v.validateTaskInput(*value, fields...)

	case models.TaskUpdate:
		return v.validateTaskUpdate(value, fields...)
	case *models.TaskUpdate:
		return v.validateTaskUpdate(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *TaskValidator) validateTaskInput(in models.TaskInput, fields ...string) error {
	fields, err := scopeFields(taskInputFields, fields)
	if err != nil {
		return err
	}

	var errs []error
	for _, field := range fields {
		switch field {
		case FieldTitle:
			if in.Title == nil {
				errs = append(errs, ErrEmptyTitle)
				continue
			}
			errs = append(errs, validateTitle(*in.Title))
		case FieldDueDate:
			if in.DueDate.Invalid {
				errs = append(errs, ErrInvalidDueDate)
			}
		}
	}

	return errors.Join(errs...)
}

func (v *TaskValidator) validateTaskUpdate(update models.TaskUpdate, fields ...string) error {
	fields, err := scopeFields(taskUpdateFields, fields)
	if err != nil {
		return err
	}

	var errs []error
	for _, field := range fields {
		switch field {
		case FieldTaskID:
			if update.ID == uuid.Nil {
				errs = append(errs, ErrInvalidTaskID)
			}
		case FieldUserID:
			if update.UserID == uuid.Nil {
				errs = append(errs, ErrInvalidUserID)
			}
		case FieldTitle:
			if update.Title != nil {
				errs = append(errs, validateTitle(*update.Title))
			}
		case FieldChanges:
			if update.IsEmpty() {
				errs = append(errs, ErrNothingToUpdate)
			}
		}
	}

	return errors.Join(errs...)
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > models.MaxTaskTitleLength {
		return ErrTitleTooLong
	}
	return nil
}

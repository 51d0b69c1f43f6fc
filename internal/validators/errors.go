package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyUsername   = errors.New("username is required")
	ErrInvalidUsername = errors.New("username must be between 3 and 32 characters")
	ErrEmptyEmail      = errors.New("email is required")
	ErrInvalidEmail    = errors.New("email is invalid")
	ErrEmptyPassword   = errors.New("password is required")
	ErrInvalidPassword = errors.New("password must be between 6 and 72 bytes")
	ErrEmptyIdentifier = errors.New("email or username is required")

	ErrEmptyTitle      = errors.New("title is required")
	ErrTitleTooLong    = errors.New("title must be at most 200 characters")
	ErrInvalidDueDate  = errors.New("dueDate must be a valid date")
	ErrInvalidTaskID   = errors.New("invalid task id")
	ErrInvalidUserID   = errors.New("invalid user id")
	ErrNothingToUpdate = errors.New("at least one field must be provided for update")
)

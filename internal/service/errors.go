package service

import (
	"errors"
	"strings"
)

// ErrValidation matches every [ValidationError].
var ErrValidation = errors.New("validation failed")

// ErrUnauthenticated matches every authentication failure below.
var ErrUnauthenticated = errors.New("unauthenticated")

var (
	ErrTokenNotFound      = unauthenticated("token not found")
	ErrUserNotFound       = unauthenticated("user not found")
	ErrTokenExpired       = unauthenticated("token expired")
	ErrTokenInvalid       = unauthenticated("invalid token")
	ErrInvalidCredentials = unauthenticated("invalid credentials")
)

var ErrTokenCreationFailed = errors.New("token creation failed")

// ValidationError carries the reason a request was rejected before any
// store access. Its message is safe to return to clients.
type ValidationError struct {
	Err error
}

func newValidationError(err error) error {
	return &ValidationError{Err: err}
}

// Error returns the validation details, one per reason, joined with "; ".
func (e *ValidationError) Error() string {
	return strings.ReplaceAll(e.Err.Error(), "\n", "; ")
}

func (e *ValidationError) Unwrap() []error {
	return []error{ErrValidation, e.Err}
}

type unauthenticatedError struct {
	msg string
}

func unauthenticated(msg string) error {
	return &unauthenticatedError{msg: msg}
}

func (e *unauthenticatedError) Error() string {
	return e.msg
}

func (e *unauthenticatedError) Is(target error) bool {
	return target == ErrUnauthenticated
}

package validators

import (
	"context"
	"errors"
	"regexp"
	"slices"
	"unicode/utf8"

	"github.com/MKhiriev/go-task-keeper/models"
)

// Field name constants used to restrict user validation to a subset of
// fields.
const (
	// FieldUsername checks presence and length (3-32 characters) of the username.
	FieldUsername = "username"
	// FieldEmail checks presence and shape of the email.
	FieldEmail = "email"
	// FieldPassword checks presence and length (6-72 bytes) of the password.
	FieldPassword = "password"
	// FieldIdentifier checks that a login names either an email or a username.
	FieldIdentifier = "identifier"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 32

	minPasswordLength = 6
	// bcrypt ignores input past 72 bytes.
	maxPasswordLength = 72
)

var emailRegexp = regexp.MustCompile(`^\S+@\S+\.\S+$`)

var registerFields = []string{FieldUsername, FieldEmail, FieldPassword}
var loginFields = []string{FieldIdentifier, FieldPassword}

type UserValidator struct {
}

func NewUserValidator() Validator {
	return &UserValidator{}
}

func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterInput:
		return v.validateRegisterInput(value, fields...)
	case *models.RegisterInput:
		return v.validateRegisterInput(*value, fields...)

	case models.LoginInput:
		return v.validateLoginInput(value, fields...)
	case *models.LoginInput:
		return v.validateLoginInput(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateRegisterInput(in models.RegisterInput, fields ...string) error {
	fields, err := scopeFields(registerFields, fields)
	if err != nil {
		return err
	}

	var errs []error
	for _, field := range fields {
		switch field {
		case FieldUsername:
			errs = append(errs, validateUsername(in.Username))
		case FieldEmail:
			errs = append(errs, validateEmail(in.Email))
		case FieldPassword:
			errs = append(errs, validatePassword(in.Password))
		}
	}

	return errors.Join(errs...)
}

func (v *UserValidator) validateLoginInput(in models.LoginInput, fields ...string) error {
	fields, err := scopeFields(loginFields, fields)
	if err != nil {
		return err
	}

	var errs []error
	for _, field := range fields {
		switch field {
		case FieldIdentifier:
			if in.Email == "" && in.Username == "" {
				errs = append(errs, ErrEmptyIdentifier)
			}
		case FieldPassword:
			if in.Password == "" {
				errs = append(errs, ErrEmptyPassword)
			}
		}
	}

	return errors.Join(errs...)
}

func validateUsername(username string) error {
	if username == "" {
		return ErrEmptyUsername
	}
	if n := utf8.RuneCountInString(username); n < minUsernameLength || n > maxUsernameLength {
		return ErrInvalidUsername
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return ErrEmptyEmail
	}
	if !emailRegexp.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return ErrInvalidPassword
	}
	return nil
}

// scopeFields returns the fields to validate: all of them when none were
// requested, otherwise the requested ones if they are all known.
func scopeFields(known, requested []string) ([]string, error) {
	if len(requested) == 0 {
		return known, nil
	}
	for _, field := range requested {
		if !slices.Contains(known, field) {
			return nil, ErrUnknownField
		}
	}
	return requested, nil
}

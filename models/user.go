package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the unique identifier of the user (UUID v7).
	UserID uuid.UUID `json:"id"`

	// Username is the unique, trimmed login name (3-32 characters).
	Username string `json:"username"`

	// Email is the unique, trimmed and lowercased email address.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// It is never serialized and never leaves the service layer.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp of the last change of the account.
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Response maps the user to its public representation without credentials.
func (u User) Response() UserResponse {
	return UserResponse{
		ID:        u.UserID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Identity returns the identity attached to authenticated requests.
func (u User) Identity() Identity {
	return Identity{
		UserID:   u.UserID,
		Username: u.Username,
		Email:    u.Email,
	}
}

// UserResponse is the wire representation of a user.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Identity is the resolved caller of an authenticated request.
type Identity struct {
	UserID   uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// RegisterInput is the body of a registration request.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput is the body of a login request. Email takes precedence over
// Username when both are provided.
type LoginInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is returned by successful registrations and logins.
type AuthResult struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

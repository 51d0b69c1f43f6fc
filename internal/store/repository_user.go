package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles user account creation and lookup against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     pgxQuerier
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// connection pool and logger.
func NewUserRepository(db pgxQuerier, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (CreatedAt, UpdatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUserAlreadyExists].
//   - Any other driver-level error → wrapped [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRow(ctx, createUser, user.UserID, user.Username, user.Email, user.PasswordHash)

	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			log.Debug().Str("func", "*userRepository.CreateUser").Msg("username or email already taken")
			return models.User{}, ErrUserAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

// UserExists reports whether the username or the email is already taken,
// using a single query.
func (r *userRepository) UserExists(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, userExists, username, email).Scan(&exists); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.UserExists").Msg("error checking user existence")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return exists, nil
}

func (r *userRepository) FindUserByID(ctx context.Context, userID uuid.UUID) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByID", findUserByID, userID)
}

func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByEmail", findUserByEmail, email)
}

func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByUsername", findUserByUsername, username)
}

// findUser runs one of the single-user lookups.
// pgx.ErrNoRows is reported as [ErrUserNotFound].
func (r *userRepository) findUser(ctx context.Context, funcName, query string, arg any) (models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("error finding user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	err := row.Scan(&user.UserID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	return user, err
}

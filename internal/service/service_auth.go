package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-task-keeper/internal/crypto"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/store"
	"github.com/MKhiriev/go-task-keeper/internal/validators"
	"github.com/MKhiriev/go-task-keeper/models"
	"github.com/google/uuid"
)

// idGenerator produces identifiers for new rows.
type idGenerator interface {
	Generate() uuid.UUID
}

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification and session
// resolution using a UserRepository for persistence, bcrypt for password
// hashing and a TokenService for JWTs.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	hasher crypto.PasswordHasher
	tokens TokenService
	ids    idGenerator

	validator validators.Validator

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, hasher crypto.PasswordHasher, tokens TokenService, ids idGenerator, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		hasher:         hasher,
		tokens:         tokens,
		ids:            ids,
		validator:      validators.NewUserValidator(),
		logger:         logger,
	}
}

// Register creates a new user account and issues its first session token.
//
// Username and email are trimmed, the email is lowercased. Returns:
//   - a ValidationError if a field is missing or malformed;
//   - store.ErrUserAlreadyExists if the username or email is taken, also
//     when a concurrent registration wins the race at insert time.
func (a *authService) Register(ctx context.Context, in models.RegisterInput) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if err := a.validator.Validate(ctx, in); err != nil {
		log.Debug().Err(err).Msg("invalid registration data provided")
		return models.AuthResult{}, newValidationError(err)
	}

	exists, err := a.userRepository.UserExists(ctx, in.Username, in.Email)
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("error checking user existence: %w", err)
	}
	if exists {
		log.Debug().Str("username", in.Username).Msg("username or email already registered")
		return models.AuthResult{}, store.ErrUserAlreadyExists
	}

	hash, err := a.hasher.Hash(in.Password)
	if err != nil {
		log.Err(err).Msg("error hashing password")
		return models.AuthResult{}, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		UserID:       a.ids.Generate(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return models.AuthResult{}, fmt.Errorf("user creation ended with error: %w", err)
	}
	log.Info().Str("user_id", user.UserID.String()).Msg("user registered")

	return a.authResult(ctx, user)
}

// Login authenticates an existing user by email, or by username when no
// email is given.
//
// Unknown users and wrong passwords both yield ErrInvalidCredentials.
func (a *authService) Login(ctx context.Context, in models.LoginInput) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if err := a.validator.Validate(ctx, in); err != nil {
		log.Debug().Err(err).Msg("invalid login data provided")
		return models.AuthResult{}, newValidationError(err)
	}

	var (
		user models.User
		err  error
	)
	if in.Email != "" {
		user, err = a.userRepository.FindUserByEmail(ctx, in.Email)
	} else {
		user, err = a.userRepository.FindUserByUsername(ctx, in.Username)
	}
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug().Msg("login attempt for unknown user")
			return models.AuthResult{}, ErrInvalidCredentials
		}
		return models.AuthResult{}, fmt.Errorf("user search failed: %w", err)
	}

	if !a.hasher.Verify(in.Password, user.PasswordHash) {
		log.Debug().Str("user_id", user.UserID.String()).Msg("wrong password")
		return models.AuthResult{}, ErrInvalidCredentials
	}

	return a.authResult(ctx, user)
}

// Authenticate verifies token and loads the user it was issued to. A token
// of a user that no longer exists yields ErrUserNotFound.
func (a *authService) Authenticate(ctx context.Context, token string) (models.Identity, error) {
	if token == "" {
		return models.Identity{}, ErrTokenNotFound
	}

	userID, err := a.tokens.Verify(ctx, token)
	if err != nil {
		return models.Identity{}, err
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.Identity{}, ErrUserNotFound
		}
		return models.Identity{}, fmt.Errorf("error resolving token subject: %w", err)
	}

	return user.Identity(), nil
}

func (a *authService) authResult(ctx context.Context, user models.User) (models.AuthResult, error) {
	token, err := a.tokens.Issue(ctx, user.UserID)
	if err != nil {
		return models.AuthResult{}, err
	}

	return models.AuthResult{Token: token.SignedString, User: user.Response()}, nil
}

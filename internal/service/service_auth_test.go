package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-task-keeper/internal/config"
	"github.com/MKhiriev/go-task-keeper/internal/crypto"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/mock"
	"github.com/MKhiriev/go-task-keeper/internal/store"
	"github.com/MKhiriev/go-task-keeper/internal/validators"
	"github.com/MKhiriev/go-task-keeper/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

type fixedIDs struct {
	id uuid.UUID
}

func (f fixedIDs) Generate() uuid.UUID { return f.id }

var testAppConfig = config.App{
	TokenSignKey:  "test-sign-key",
	TokenIssuer:   "test-issuer",
	TokenDuration: time.Hour,
}

func newTestAuthService(t *testing.T) (AuthService, *mock.MockUserRepository, crypto.PasswordHasher, uuid.UUID) {
	t.Helper()
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	hasher := crypto.NewPasswordHasher(bcrypt.MinCost)
	id := uuid.Must(uuid.NewV7())

	svc := NewAuthService(users, hasher, NewTokenService(testAppConfig, logger.Nop()), fixedIDs{id: id}, logger.Nop())
	return svc, users, hasher, id
}

func TestRegister_Success(t *testing.T) {
	svc, users, hasher, id := newTestAuthService(t)
	ctx := context.Background()

	gomock.InOrder(
		users.EXPECT().UserExists(ctx, "alice", "alice@example.com").Return(false, nil),
		users.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, u models.User) (models.User, error) {
				assert.Equal(t, id, u.UserID)
				assert.Equal(t, "alice", u.Username)
				assert.Equal(t, "alice@example.com", u.Email)
				assert.NotEqual(t, "secret1", u.PasswordHash)
				assert.True(t, hasher.Verify("secret1", u.PasswordHash))
				u.CreatedAt = time.Now()
				return u, nil
			}),
	)

	res, err := svc.Register(ctx, models.RegisterInput{Username: "  alice ", Email: " Alice@Example.COM ", Password: "secret1"})
	require.NoError(t, err)

	assert.NotEmpty(t, res.Token)
	assert.Equal(t, id, res.User.ID)
	assert.Equal(t, "alice@example.com", res.User.Email)

	userID, err := NewTokenService(testAppConfig, logger.Nop()).Verify(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, id, userID)
}

func TestRegister_ValidationError(t *testing.T) {
	tests := []struct {
		name string
		in   models.RegisterInput
		want error
	}{
		{name: "missing all", in: models.RegisterInput{}, want: validators.ErrEmptyUsername},
		{name: "short username", in: models.RegisterInput{Username: "al", Email: "a@b.co", Password: "secret1"}, want: validators.ErrInvalidUsername},
		{name: "blank username", in: models.RegisterInput{Username: "   ", Email: "a@b.co", Password: "secret1"}, want: validators.ErrEmptyUsername},
		{name: "bad email", in: models.RegisterInput{Username: "alice", Email: "alice", Password: "secret1"}, want: validators.ErrInvalidEmail},
		{name: "short password", in: models.RegisterInput{Username: "alice", Email: "a@b.co", Password: "123"}, want: validators.ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, _ := newTestAuthService(t)

			_, err := svc.Register(context.Background(), tt.in)
			assert.ErrorIs(t, err, ErrValidation)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegister_Conflict(t *testing.T) {
	svc, users, _, _ := newTestAuthService(t)
	ctx := context.Background()

	users.EXPECT().UserExists(ctx, "alice", "alice@example.com").Return(true, nil)

	_, err := svc.Register(ctx, models.RegisterInput{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, store.ErrUserAlreadyExists)
}

func TestRegister_ConflictAtInsert(t *testing.T) {
	svc, users, _, _ := newTestAuthService(t)
	ctx := context.Background()

	users.EXPECT().UserExists(ctx, gomock.Any(), gomock.Any()).Return(false, nil)
	users.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, store.ErrUserAlreadyExists)

	_, err := svc.Register(ctx, models.RegisterInput{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, store.ErrUserAlreadyExists)
}

func TestRegister_StoreError(t *testing.T) {
	svc, users, _, _ := newTestAuthService(t)
	ctx := context.Background()

	users.EXPECT().UserExists(ctx, gomock.Any(), gomock.Any()).Return(false, store.ErrExecutingQuery)

	_, err := svc.Register(ctx, models.RegisterInput{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, store.ErrExecutingQuery)
	assert.NotErrorIs(t, err, ErrValidation)
}

func storedUser(t *testing.T, hasher crypto.PasswordHasher, id uuid.UUID) models.User {
	t.Helper()
	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)
	return models.User{UserID: id, Username: "alice", Email: "alice@example.com", PasswordHash: hash}
}

func TestLogin_ByEmail(t *testing.T) {
	svc, users, hasher, id := newTestAuthService(t)
	ctx := context.Background()

	users.EXPECT().FindUserByEmail(ctx, "alice@example.com").Return(storedUser(t, hasher, id), nil)

	res, err := svc.Login(ctx, models.LoginInput{Email: "ALICE@example.com", Username: "ignored", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "alice", res.User.Username)
}

func TestLogin_ByUsername(t *testing.T) {
	svc, users, hasher, id := newTestAuthService(t)
	ctx := context.Background()

	users.EXPECT().FindUserByUsername(ctx, "alice").Return(storedUser(t, hasher, id), nil)

	res, err := svc.Login(ctx, models.LoginInput{Username: " alice ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, id, res.User.ID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Run("unknown user", func(t *testing.T) {
		svc, users, _, _ := newTestAuthService(t)
		users.EXPECT().FindUserByEmail(gomock.Any(), "bob@example.com").Return(models.User{}, store.ErrUserNotFound)

		_, err := svc.Login(context.Background(), models.LoginInput{Email: "bob@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, users, hasher, id := newTestAuthService(t)
		users.EXPECT().FindUserByUsername(gomock.Any(), "alice").Return(storedUser(t, hasher, id), nil)

		_, err := svc.Login(context.Background(), models.LoginInput{Username: "alice", Password: "wrong-password"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestLogin_ValidationError(t *testing.T) {
	svc, _, _, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), models.LoginInput{Password: "secret1"})
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, validators.ErrEmptyIdentifier)

	_, err = svc.Login(context.Background(), models.LoginInput{Username: "alice"})
	assert.ErrorIs(t, err, validators.ErrEmptyPassword)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	tokens := NewTokenService(testAppConfig, logger.Nop())

	t.Run("valid", func(t *testing.T) {
		svc, users, hasher, id := newTestAuthService(t)
		token, err := tokens.Issue(ctx, id)
		require.NoError(t, err)
		users.EXPECT().FindUserByID(ctx, id).Return(storedUser(t, hasher, id), nil)

		identity, err := svc.Authenticate(ctx, token.SignedString)
		require.NoError(t, err)
		assert.Equal(t, models.Identity{UserID: id, Username: "alice", Email: "alice@example.com"}, identity)
	})

	t.Run("empty", func(t *testing.T) {
		svc, _, _, _ := newTestAuthService(t)
		_, err := svc.Authenticate(ctx, "")
		assert.ErrorIs(t, err, ErrTokenNotFound)
	})

	t.Run("expired", func(t *testing.T) {
		svc, _, _, id := newTestAuthService(t)
		cfg := testAppConfig
		cfg.TokenDuration = -time.Minute
		token, err := NewTokenService(cfg, logger.Nop()).Issue(ctx, id)
		require.NoError(t, err)

		_, err = svc.Authenticate(ctx, token.SignedString)
		assert.ErrorIs(t, err, ErrTokenExpired)
		assert.NotErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("malformed", func(t *testing.T) {
		svc, _, _, _ := newTestAuthService(t)
		_, err := svc.Authenticate(ctx, "not-a-token")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("foreign key", func(t *testing.T) {
		svc, _, _, id := newTestAuthService(t)
		cfg := testAppConfig
		cfg.TokenSignKey = "other-key"
		token, err := NewTokenService(cfg, logger.Nop()).Issue(ctx, id)
		require.NoError(t, err)

		_, err = svc.Authenticate(ctx, token.SignedString)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("deleted user", func(t *testing.T) {
		svc, users, _, id := newTestAuthService(t)
		token, err := tokens.Issue(ctx, id)
		require.NoError(t, err)
		users.EXPECT().FindUserByID(ctx, id).Return(models.User{}, store.ErrUserNotFound)

		_, err = svc.Authenticate(ctx, token.SignedString)
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("store error", func(t *testing.T) {
		svc, users, _, id := newTestAuthService(t)
		token, err := tokens.Issue(ctx, id)
		require.NoError(t, err)
		users.EXPECT().FindUserByID(ctx, id).Return(models.User{}, errors.New("db down"))

		_, err = svc.Authenticate(ctx, token.SignedString)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestValidationError_Message(t *testing.T) {
	err := newValidationError(errors.Join(validators.ErrEmptyTitle, validators.ErrInvalidDueDate))

	assert.Equal(t, "title is required; dueDate must be a valid date", err.Error())
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, validators.ErrInvalidDueDate)
}

func TestUnauthenticatedErrors(t *testing.T) {
	for _, err := range []error{ErrTokenNotFound, ErrUserNotFound, ErrTokenExpired, ErrTokenInvalid, ErrInvalidCredentials} {
		assert.ErrorIs(t, err, ErrUnauthenticated, err.Error())
	}
	assert.NotErrorIs(t, ErrTokenExpired, ErrTokenInvalid)
}

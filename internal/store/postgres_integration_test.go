//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-task-keeper/internal/config"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/taskquery"
	"github.com/MKhiriev/go-task-keeper/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) *DB {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("task_keeper_test"),
		postgres.WithUsername("task_keeper"),
		postgres.WithPassword("task_keeper"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := NewConnectPostgres(ctx, config.DB{DSN: dsn, MaxConns: 4}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.Migrate())
	return db
}

func TestPostgres_Integration(t *testing.T) {
	db := startPostgres(t)
	repos := NewRepositories(db, logger.Nop())
	ctx := context.Background()

	alice, err := repos.UserRepository.CreateUser(ctx, models.User{
		UserID: uuid.New(), Username: "alice", Email: "alice@example.com", PasswordHash: "h",
	})
	require.NoError(t, err)

	_, err = repos.UserRepository.CreateUser(ctx, models.User{
		UserID: uuid.New(), Username: "alice", Email: "other@example.com", PasswordHash: "h",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	exists, err := repos.UserRepository.UserExists(ctx, "nobody", "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	bob, err := repos.UserRepository.CreateUser(ctx, models.User{
		UserID: uuid.New(), Username: "bob", Email: "bob@example.com", PasswordHash: "h",
	})
	require.NoError(t, err)

	for i, tags := range [][]string{{"work"}, {"home"}, {"work", "urgent"}} {
		_, err := repos.TaskRepository.CreateTask(ctx, models.Task{
			ID: uuid.New(), UserID: alice.UserID, Title: "task", Done: i == 0, Tags: tags,
		})
		require.NoError(t, err)
	}
	bobTask, err := repos.TaskRepository.CreateTask(ctx, models.Task{ID: uuid.New(), UserID: bob.UserID, Title: "bob"})
	require.NoError(t, err)
	assert.Equal(t, []string{}, bobTask.Tags)

	spec := taskquery.Build(alice.UserID, map[string][]string{"tag": {"work"}, "sort": {"title"}})
	tasks, err := repos.TaskRepository.ListTasks(ctx, spec)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	total, err := repos.TaskRepository.CountTasks(ctx, spec.Filter)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, err = repos.TaskRepository.GetTask(ctx, alice.UserID, bobTask.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	_, err = repos.TaskRepository.DeleteTask(ctx, alice.UserID, bobTask.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)

	title := "renamed"
	updated, err := repos.TaskRepository.UpdateTask(ctx, models.TaskUpdate{
		ID: bobTask.ID, UserID: bob.UserID, Title: &title, SetTags: true, Tags: []string{"x"},
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, []string{"x"}, updated.Tags)
	assert.False(t, updated.UpdatedAt.Before(bobTask.UpdatedAt))

	deleted, err := repos.TaskRepository.DeleteTask(ctx, bob.UserID, bobTask.ID)
	require.NoError(t, err)
	assert.Equal(t, bobTask.ID, deleted)
}

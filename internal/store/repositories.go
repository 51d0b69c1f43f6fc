package store

import "github.com/MKhiriev/go-task-keeper/internal/logger"

// Repositories groups the Postgres-backed repositories of the server.
type Repositories struct {
	UserRepository UserRepository
	TaskRepository TaskRepository
}

func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository: NewUserRepository(db.Pool, logger),
		TaskRepository: NewTaskRepository(db.Pool, logger),
	}
}

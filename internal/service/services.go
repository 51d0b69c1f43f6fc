package service

import (
	"github.com/MKhiriev/go-task-keeper/internal/config"
	"github.com/MKhiriev/go-task-keeper/internal/crypto"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/store"
	"github.com/MKhiriev/go-task-keeper/internal/utils"
)

type Services struct {
	AuthService AuthService
	TaskService TaskService
}

// NewServices wires the services over the repositories. listCache may be
// nil, in which case task listings always hit the database.
func NewServices(repositories *store.Repositories, listCache store.TaskListCache, cfg config.App, logger *logger.Logger) *Services {
	ids := utils.NewUUIDGenerator()
	tokens := NewTokenService(cfg, logger)

	return &Services{
		AuthService: NewAuthService(repositories.UserRepository, crypto.NewPasswordHasher(cfg.PasswordHashCost), tokens, ids, logger),
		TaskService: NewTaskValidationService().Wrap(
			NewTaskService(repositories.TaskRepository, listCache, ids, logger),
		),
	}
}

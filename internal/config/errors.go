package config

import "errors"

// Validation errors returned by [StructuredConfig.validate].
var (
	// ErrMissingTokenSignKey indicates that no token signing secret was configured.
	ErrMissingTokenSignKey = errors.New("token sign key is required")
	// ErrMissingDatabaseDSN indicates that no Postgres connection string was configured.
	ErrMissingDatabaseDSN = errors.New("database DSN is required")
	// ErrInvalidTokenDuration indicates a negative token lifetime.
	ErrInvalidTokenDuration = errors.New("invalid token duration")
	// ErrInvalidPasswordHashCost indicates a bcrypt cost outside of bcrypt's bounds.
	ErrInvalidPasswordHashCost = errors.New("invalid password hash cost")
	// ErrInvalidStorageConfigs indicates invalid pool or cache settings.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates negative server timeouts.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)

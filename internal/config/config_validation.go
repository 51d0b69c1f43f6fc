// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// validate checks that the merged [StructuredConfig] is complete enough to
// start serving. The server must never run half-configured, so every error
// returned here is fatal at startup.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if cfg.App.TokenSignKey == "" {
		errs = append(errs, ErrMissingTokenSignKey)
	}
	if cfg.App.TokenDuration < 0 {
		errs = append(errs, ErrInvalidTokenDuration)
	}
	if cfg.App.PasswordHashCost < bcrypt.MinCost || cfg.App.PasswordHashCost > bcrypt.MaxCost {
		errs = append(errs, ErrInvalidPasswordHashCost)
	}

	if cfg.Storage.DB.DSN == "" {
		errs = append(errs, ErrMissingDatabaseDSN)
	}
	if cfg.Storage.DB.MaxConns < 0 {
		errs = append(errs, ErrInvalidStorageConfigs)
	}
	if cfg.Storage.Cache.TTL < 0 {
		errs = append(errs, ErrInvalidStorageConfigs)
	}

	if cfg.Server.RequestTimeout < 0 || cfg.Server.ShutdownTimeout < 0 {
		errs = append(errs, ErrInvalidServerConfigs)
	}

	return errors.Join(errs...)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-task-keeper server. It is populated by merging values from environment
// variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token, password hashing and logging settings.
	App App `envPrefix:"APP_"`

	// Storage holds the Postgres and the optional Redis settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the listen address and timeouts of the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Port is the bare listen port used when Server.HTTPAddress is empty,
	// for platforms that only export PORT.
	// Env: PORT
	Port string `env:"PORT"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Env: CONFIG, flags: -c / -config
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings that are fixed at startup and shared
// read-only by every request.
type App struct {
	// TokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	// Required: the server refuses to start without it.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in and required from every token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of an issued token (e.g. "168h").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// PasswordHashCost is the bcrypt work factor.
	// Env: APP_PASSWORD_HASH_COST
	PasswordHashCost int `env:"PASSWORD_HASH_COST"`

	// LogLevel is the minimal zerolog level ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Server holds network and timeout settings for the inbound HTTP server.
type Server struct {
	// HTTPAddress is the TCP address in "host:port" form (e.g. ":8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout cancels a request context after the given duration.
	// Zero disables the timeout.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds the graceful shutdown of the HTTP server.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Storage groups the configuration of all persistence backends.
type Storage struct {
	DB    DB    `envPrefix:"DB_"`
	Cache Cache `envPrefix:"CACHE_"`
}

// DB holds connection settings for Postgres.
type DB struct {
	// DSN is the Postgres connection string. Required.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// MaxConns caps the pgx pool size.
	// Env: STORAGE_DB_MAX_CONNS
	MaxConns int32 `env:"MAX_CONNS"`
}

// Cache holds the settings of the optional Redis task list cache.
// An empty RedisAddress disables caching.
type Cache struct {
	// Env: STORAGE_CACHE_REDIS_ADDRESS
	RedisAddress string `env:"REDIS_ADDRESS"`

	// Env: STORAGE_CACHE_REDIS_PASSWORD
	RedisPassword string `env:"REDIS_PASSWORD"`

	// Env: STORAGE_CACHE_REDIS_DB
	RedisDB int `env:"REDIS_DB"`

	// TTL is the lifetime of a cached task page.
	// Env: STORAGE_CACHE_TTL
	TTL time.Duration `env:"TTL"`
}

// Default values applied to settings left empty by every source.
const (
	DefaultTokenIssuer      = "go-task-keeper"
	DefaultTokenDuration    = 7 * 24 * time.Hour
	DefaultPasswordHashCost = 10
	DefaultLogLevel         = "debug"
	DefaultHTTPAddress      = ":8080"
	DefaultShutdownTimeout  = 10 * time.Second
	DefaultDBMaxConns       = 10
	DefaultCacheTTL         = time.Minute
)

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources in the following priority order (later sources
// override non-zero fields of earlier ones):
//  1. Environment variables
//  2. Command-line flags (args, usually os.Args[1:])
//  3. JSON file (path resolved from sources 1 and 2)
//
// Defaults are applied to whatever is still empty, then the result is
// validated. Any error here is fatal for the server.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}

// applyDefaults fills settings that no source provided.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}
	if cfg.App.PasswordHashCost == 0 {
		cfg.App.PasswordHashCost = DefaultPasswordHashCost
	}
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = DefaultLogLevel
	}

	if cfg.Server.HTTPAddress == "" {
		if cfg.Port != "" {
			cfg.Server.HTTPAddress = ":" + cfg.Port
		} else {
			cfg.Server.HTTPAddress = DefaultHTTPAddress
		}
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if cfg.Storage.DB.MaxConns == 0 {
		cfg.Storage.DB.MaxConns = DefaultDBMaxConns
	}
	if cfg.Storage.Cache.TTL == 0 {
		cfg.Storage.Cache.TTL = DefaultCacheTTL
	}
}

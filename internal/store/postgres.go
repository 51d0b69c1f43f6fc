package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-task-keeper/internal/config"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/migrations"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// pgxQuerier is the subset of *pgxpool.Pool used by the repositories.
// pgxmock.PgxPoolIface satisfies it as well.
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB owns the Postgres connection pool.
type DB struct {
	Pool   *pgxpool.Pool
	logger *logger.Logger
}

// NewConnectPostgres opens a pgx pool for cfg.DSN and pings the database.
// Failing to reach the database is fatal for the server.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error parsing database DSN")
		return nil, fmt.Errorf("error parsing database DSN: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occurred during database connection")
		return nil, fmt.Errorf("error occurred during database connection: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		return nil, fmt.Errorf("error connecting database: %w", err)
	}
	log.Info().Str("func", "NewConnectPostgres").Int32("max_conns", poolConfig.MaxConns).Msg("connected to database successfully")

	return &DB{Pool: pool, logger: log}, nil
}

// Migrate applies all pending goose migrations through a database/sql
// handle that borrows connections from the pool.
func (db *DB) Migrate() error {
	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	defer sqlDB.Close()

	if err := migrations.Migrate(sqlDB); err != nil {
		return fmt.Errorf("error applying migrations: %w", err)
	}
	db.logger.Info().Msg("database migrations applied")

	return nil
}

func (db *DB) Close() {
	db.Pool.Close()
}

// postgresError returns the SQLSTATE code of err or "" when err does not
// come from Postgres.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

func isUniqueViolation(err error) bool {
	return postgresError(err) == pgerrcode.UniqueViolation
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-task-keeper/internal/cache"
	"github.com/MKhiriev/go-task-keeper/internal/config"
	"github.com/MKhiriev/go-task-keeper/internal/handler"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/server"
	"github.com/MKhiriev/go-task-keeper/internal/service"
	"github.com/MKhiriev/go-task-keeper/internal/store"
	"github.com/MKhiriev/go-task-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("go-task-keeper-server", config.DefaultLogLevel).Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("go-task-keeper-server", cfg.App.LogLevel)
	log.Info().Str("version", buildInfo.BuildVersion()).Str("commit", buildInfo.BuildCommit()).Msg("starting server")
	log.Debug().
		Str("http_address", cfg.Server.HTTPAddress).
		Str("redis_address", cfg.Storage.Cache.RedisAddress).
		Dur("request_timeout", cfg.Server.RequestTimeout).
		Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	services := service.NewServices(store.NewRepositories(db, log), newTaskListCache(ctx, cfg.Storage.Cache, log), cfg.App, log)

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(); err != nil {
		log.Error().Err(err).Msg("error running server")
	}
}

// newTaskListCache returns the redis-backed list cache, or nil when redis
// is not configured or unreachable.
func newTaskListCache(ctx context.Context, cfg config.Cache, log *logger.Logger) store.TaskListCache {
	rdb, err := cache.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("task list cache disabled")
		return nil
	}
	if rdb == nil {
		return nil
	}
	return cache.NewTaskListCache(rdb, cfg.TTL)
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}

// Package cache implements the optional Redis cache of task listing pages.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/go-task-keeper/internal/config"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/taskquery"
	"github.com/MKhiriev/go-task-keeper/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyGeneration = "tasks:gen:"
	keyList       = "tasks:list:"

	// minGenerationTTL keeps generation counters alive far longer than any
	// page stored under them.
	minGenerationTTL = 24 * time.Hour
)

// TaskListCache stores task listing pages in Redis under a per-owner
// generation counter. It implements store.TaskListCache.
type TaskListCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTaskListCache returns a TaskListCache storing pages for ttl.
func NewTaskListCache(rdb *redis.Client, ttl time.Duration) *TaskListCache {
	return &TaskListCache{rdb: rdb, ttl: ttl}
}

// NewRedisClient connects to the configured Redis and pings it. It returns
// nil without error when no address is configured.
func NewRedisClient(ctx context.Context, cfg config.Cache, log *logger.Logger) (*redis.Client, error) {
	if cfg.RedisAddress == "" {
		log.Info().Msg("redis address is empty, task list cache disabled")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("error connecting redis: %w", err)
	}
	log.Info().Str("address", cfg.RedisAddress).Msg("connected to redis")

	return rdb, nil
}

// Generation returns the current generation of the owner's pages. A missing
// counter is generation 0.
func (c *TaskListCache) Generation(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	gen, err := c.rdb.Get(ctx, generationKey(ownerID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("error reading cache generation: %w", err)
	}
	return gen, nil
}

// GetPage returns the page cached for spec under generation.
func (c *TaskListCache) GetPage(ctx context.Context, generation int64, spec taskquery.Spec) (models.TaskPage, bool, error) {
	b, err := c.rdb.Get(ctx, pageKey(generation, spec)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.TaskPage{}, false, nil
	}
	if err != nil {
		return models.TaskPage{}, false, fmt.Errorf("error reading cached page: %w", err)
	}

	var page models.TaskPage
	if err := json.Unmarshal(b, &page); err != nil {
		return models.TaskPage{}, false, fmt.Errorf("error decoding cached page: %w", err)
	}
	return page, true, nil
}

// SetPage stores page for spec under generation.
func (c *TaskListCache) SetPage(ctx context.Context, generation int64, spec taskquery.Spec, page models.TaskPage) error {
	b, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("error encoding page: %w", err)
	}
	if err := c.rdb.Set(ctx, pageKey(generation, spec), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("error caching page: %w", err)
	}
	return nil
}

// Invalidate moves the owner to the next generation.
func (c *TaskListCache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	key := generationKey(ownerID)
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, c.generationTTL())
		return nil
	})
	if err != nil {
		return fmt.Errorf("error invalidating task list cache: %w", err)
	}
	return nil
}

func (c *TaskListCache) generationTTL() time.Duration {
	return max(minGenerationTTL, 10*c.ttl)
}

func generationKey(ownerID uuid.UUID) string {
	return keyGeneration + ownerID.String()
}

func pageKey(generation int64, spec taskquery.Spec) string {
	return keyList + spec.Filter.OwnerID.String() + ":" + strconv.FormatInt(generation, 10) + ":" + spec.Canonical()
}

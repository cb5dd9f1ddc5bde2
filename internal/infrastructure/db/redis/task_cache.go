package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskboard/task-api/internal/api/metrics"
	"github.com/taskboard/task-api/internal/core/domain"
)

const cacheTTL = 5 * time.Minute

// TaskCache is a read-through cache for task-by-id lookups.
// Key format: task:<id>. Entries expire after cacheTTL; writes to a task
// invalidate its entry. The cached record carries the owner id, so the
// service re-runs its ownership check on every cached read.
type TaskCache struct {
	client *redis.Client
}

// NewTaskCache creates a TaskCache wrapping the given Redis client.
func NewTaskCache(client *redis.Client) *TaskCache {
	return &TaskCache{client: client}
}

// Get returns the cached task, or (nil, nil) on a miss.
func (c *TaskCache) Get(ctx context.Context, taskID string) (*domain.Task, error) {
	raw, err := c.client.Get(ctx, c.key(taskID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.TaskCacheTotal.WithLabelValues("miss").Inc()
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var task domain.Task
	if err := json.Unmarshal(raw, &task); err != nil {
		// Unreadable entry: drop it and treat as a miss.
		_ = c.client.Del(ctx, c.key(taskID)).Err()
		metrics.TaskCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}

	metrics.TaskCacheTotal.WithLabelValues("hit").Inc()
	return &task, nil
}

func (c *TaskCache) Set(ctx context.Context, task *domain.Task) error {
	raw, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(task.ID), raw, cacheTTL).Err()
}

func (c *TaskCache) Invalidate(ctx context.Context, taskID string) error {
	return c.client.Del(ctx, c.key(taskID)).Err()
}

func (c *TaskCache) key(taskID string) string {
	return "task:" + taskID
}

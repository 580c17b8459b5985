package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/todo-api/internal/logger"
	"github.com/sbilibin2017/todo-api/internal/models"
)

// TodoCacheRepository caches per-user todo lists in Redis
type TodoCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached lists
}

// NewTodoCacheRepository creates a new repository instance with optional TTL
func NewTodoCacheRepository(client *redis.Client, expiration time.Duration) *TodoCacheRepository {
	return &TodoCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func todoListKey(userID int64) string {
	return fmt.Sprintf("todos:%d", userID)
}

// GetByUserID fetches the cached todo list for a user.
// Returns (nil, nil) on a cache miss.
func (r *TodoCacheRepository) GetByUserID(ctx context.Context, userID int64) ([]models.TodoDB, error) {
	key := todoListKey(userID)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow("todo cache read",
			"key", key,
			"error", err,
		)
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var todos []models.TodoDB
	if err := json.Unmarshal([]byte(val), &todos); err != nil {
		logger.Log.Errorw("todo cache read",
			"key", key,
			"error", err,
		)
		return nil, err
	}

	logger.Log.Infow("todo cache read",
		"key", key,
		"result", len(todos),
	)

	return todos, nil
}

// SetByUserID stores the todo list for a user with the configured TTL.
func (r *TodoCacheRepository) SetByUserID(ctx context.Context, userID int64, todos []models.TodoDB) error {
	key := todoListKey(userID)

	data, err := json.Marshal(todos)
	if err != nil {
		logger.Log.Errorw("todo cache write",
			"key", key,
			"error", err,
		)
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow("todo cache write",
		"key", key,
		"result", len(todos),
		"error", err,
	)

	return err
}

// DeleteByUserID drops the cached list for a user after a mutation.
func (r *TodoCacheRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	key := todoListKey(userID)

	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow("todo cache delete",
		"key", key,
		"error", err,
	)

	return err
}

package counter

import (
	"context"
	"errors"
	"fmt"
	"log"

	"stackit/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

type redisViewCounter struct {
	rdb *redis.Client
}

// NewRedisViewCounter connects to Redis using the loaded config and fails
// fast when the server is unreachable.
func NewRedisViewCounter() ViewCounter {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	log.Println("Successfully connected to Redis")

	return &redisViewCounter{rdb: rdb}
}

func viewKey(questionID int64) string {
	return fmt.Sprintf("question:views:%d", questionID)
}

func (c *redisViewCounter) Bump(ctx context.Context, questionID int64) (int64, error) {
	n, err := c.rdb.Incr(ctx, viewKey(questionID)).Result()
	if err != nil {
		return 0, fmt.Errorf("redisViewCounter.Bump: %w", err)
	}
	return n, nil
}

func (c *redisViewCounter) Peek(ctx context.Context, questionID int64) (int64, error) {
	n, err := c.rdb.Get(ctx, viewKey(questionID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redisViewCounter.Peek: %w", err)
	}
	return n, nil
}

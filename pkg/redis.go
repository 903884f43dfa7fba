package pkg

import (
	"context"
	"fmt"
	"time"

	"github.com/pvpk06/quiz-analysis-service/internal/config"
	"github.com/redis/go-redis/v9"
)

const redisPingTimeout = 5 * time.Second

// NewRedisClient connects to the payload cache and verifies connectivity at
// startup, so a misconfigured cache fails the boot instead of the first view.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return client, nil
}

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClients holds the optional shared state of a multi-replica
// deployment: Commands backs the rate limiter and the lead queue, PubSub
// fans chat events out to websocket subscribers on every replica.
type RedisClients struct {
	Commands *redis.Client
	PubSub   *redis.Client
}

// NewRedisClients returns (nil, nil) for an empty URL; every consumer then
// falls back to in-process state.
func NewRedisClients(ctx context.Context, redisURL string) (*RedisClients, error) {
	if redisURL == "" {
		return nil, nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	commands := redis.NewClient(opt)
	if err := commands.Ping(ctx).Err(); err != nil {
		commands.Close()
		return nil, fmt.Errorf("failed to ping Redis (commands): %w", err)
	}

	// PubSub client (separate connection)
	pubsubOpt := *opt
	pubsub := redis.NewClient(&pubsubOpt)
	if err := pubsub.Ping(ctx).Err(); err != nil {
		commands.Close()
		pubsub.Close()
		return nil, fmt.Errorf("failed to ping Redis (pubsub): %w", err)
	}

	return &RedisClients{Commands: commands, PubSub: pubsub}, nil
}

func (r *RedisClients) Close() {
	if r == nil {
		return
	}
	r.Commands.Close()
	r.PubSub.Close()
}

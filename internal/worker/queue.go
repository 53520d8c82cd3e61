package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"lfg-site/internal/models"
)

const LeadQueue = "queue:lead-notifications"

var ErrQueueFull = errors.New("lead queue is full")

// Queue carries lead jobs from the contact handler to the pool.
type Queue interface {
	Push(ctx context.Context, job models.LeadJob) error
	// Pop waits up to timeout for a job; (nil, nil) means none arrived.
	Pop(ctx context.Context, timeout time.Duration) (*models.LeadJob, error)
}

// MemoryQueue is a bounded in-process queue.
type MemoryQueue struct {
	ch chan models.LeadJob
}

func NewMemoryQueue(size int) *MemoryQueue {
	if size <= 0 {
		size = 100
	}
	return &MemoryQueue{ch: make(chan models.LeadJob, size)}
}

func (q *MemoryQueue) Push(ctx context.Context, job models.LeadJob) error {
	select {
	case q.ch <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

func (q *MemoryQueue) Pop(ctx context.Context, timeout time.Duration) (*models.LeadJob, error) {
	select {
	case job := <-q.ch:
		return &job, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(timeout):
		return nil, nil
	}
}

// RedisQueue survives restarts and is shared by every replica.
type RedisQueue struct {
	client *redis.Client
	key    string
}

func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{client: client, key: LeadQueue}
}

func (q *RedisQueue) Push(ctx context.Context, job models.LeadJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode lead job: %w", err)
	}
	return q.client.LPush(ctx, q.key, data).Err()
}

func (q *RedisQueue) Pop(ctx context.Context, timeout time.Duration) (*models.LeadJob, error) {
	// BRPOP with LPUSH keeps FIFO order
	result, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(result) < 2 {
		return nil, nil
	}

	var job models.LeadJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return nil, fmt.Errorf("failed to parse lead job: %w", err)
	}
	return &job, nil
}

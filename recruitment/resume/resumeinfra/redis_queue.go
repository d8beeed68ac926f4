package resumeinfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/hiretrack/recruitment/resume"
	"github.com/go-redis/redis/v8"
)

// RedisMailQueue implements resume.MailQueue using a Redis list for ready
// jobs and a sorted set scored by due time for delayed ones
type RedisMailQueue struct {
	client    *redis.Client
	queueName string
	now       func() time.Time
}

func NewRedisMailQueue(client *redis.Client, queueName string) *RedisMailQueue {
	return &RedisMailQueue{
		client:    client,
		queueName: queueName,
		now:       time.Now,
	}
}

// WithClock replaces the time source used to score delayed jobs
func (q *RedisMailQueue) WithClock(now func() time.Time) *RedisMailQueue {
	q.now = now
	return q
}

func (q *RedisMailQueue) delayedKey() string {
	return q.queueName + ":delayed"
}

// Enqueue adds a job to the queue
func (q *RedisMailQueue) Enqueue(ctx context.Context, job *resume.NotificationJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal payload for job %s: %w", job.ID, err)
	}

	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return resume.ErrRegistry.NewWithCause(resume.CodeQueueEnqueueFailed, err).
			WithDetail("job_id", job.ID)
	}
	return nil
}

// Dequeue blocks up to timeout. A nil job with a nil error means the queue
// stayed empty.
func (q *RedisMailQueue) Dequeue(ctx context.Context, timeout time.Duration) (*resume.NotificationJob, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeQueueDequeueFailed, err)
	}

	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}

	var job resume.NotificationJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return nil, fmt.Errorf("unmarshal job: %w", err)
	}
	return &job, nil
}

// EnqueueDelayed schedules a job for later processing
func (q *RedisMailQueue) EnqueueDelayed(ctx context.Context, job *resume.NotificationJob, delay time.Duration) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal delayed payload for job %s: %w", job.ID, err)
	}

	score := float64(q.now().Add(delay).Unix())
	if err := q.client.ZAdd(ctx, q.delayedKey(), &redis.Z{
		Score:  score,
		Member: data,
	}).Err(); err != nil {
		return resume.ErrRegistry.NewWithCause(resume.CodeQueueEnqueueFailed, err).
			WithDetail("job_id", job.ID).
			WithDetail("delay", delay.String())
	}
	return nil
}

// MoveDelayedToReady moves due delayed jobs to the ready list
func (q *RedisMailQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	now := float64(q.now().Unix())

	jobs, err := q.client.ZRangeByScore(ctx, q.delayedKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%f", now),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("get delayed jobs: %w", err)
	}

	if len(jobs) == 0 {
		return 0, nil
	}

	pipe := q.client.TxPipeline()
	for _, job := range jobs {
		pipe.LPush(ctx, q.queueName, job)
		pipe.ZRem(ctx, q.delayedKey(), job)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("move delayed jobs to ready: %w", err)
	}
	return len(jobs), nil
}

func (q *RedisMailQueue) GetQueueSize(ctx context.Context) (int64, error) {
	size, err := q.client.LLen(ctx, q.queueName).Result()
	if err != nil {
		return 0, fmt.Errorf("get queue size: %w", err)
	}
	return size, nil
}

func (q *RedisMailQueue) GetDelayedQueueSize(ctx context.Context) (int64, error) {
	size, err := q.client.ZCard(ctx, q.delayedKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("get delayed queue size: %w", err)
	}
	return size, nil
}

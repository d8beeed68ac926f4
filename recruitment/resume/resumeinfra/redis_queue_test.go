package resumeinfra

import (
	"context"
	"testing"
	"time"

	"github.com/Abraxas-365/hiretrack/pkg/errx"
	"github.com/Abraxas-365/hiretrack/pkg/mailx"
	"github.com/Abraxas-365/hiretrack/recruitment/resume"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ resume.MailQueue = (*RedisMailQueue)(nil)

func newRedisQueue(t *testing.T) (*RedisMailQueue, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisMailQueue(client, "hiretrack:mail"), srv
}

func TestRedisMailQueue_FIFO(t *testing.T) {
	ctx := context.Background()
	q, _ := newRedisQueue(t)

	msg := mailx.Message{To: "asha@example.com", Subject: "Application Received - Acme", HTML: "<p>hi</p>"}
	require.NoError(t, q.Enqueue(ctx, &resume.NotificationJob{ID: "a", Kind: resume.NotifyResumeReceived, Message: msg}))
	require.NoError(t, q.Enqueue(ctx, &resume.NotificationJob{ID: "b"}))

	size, err := q.GetQueueSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), size)

	first, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "a", first.ID)
	assert.Equal(t, resume.NotifyResumeReceived, first.Kind)
	assert.Equal(t, msg, first.Message)

	second, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "b", second.ID)
}

func TestRedisMailQueue_DequeueEmpty(t *testing.T) {
	q, _ := newRedisQueue(t)

	job, err := q.Dequeue(context.Background(), time.Second)
	assert.NoError(t, err)
	assert.Nil(t, job)
}

func TestRedisMailQueue_DelayedJobs(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	q, srv := newRedisQueue(t)
	q.WithClock(func() time.Time { return now })

	require.NoError(t, q.EnqueueDelayed(ctx, &resume.NotificationJob{ID: "late"}, 10*time.Minute))
	require.NoError(t, q.EnqueueDelayed(ctx, &resume.NotificationJob{ID: "soon"}, time.Minute))
	assert.True(t, srv.Exists("hiretrack:mail:delayed"))

	moved, err := q.MoveDelayedToReady(ctx)
	require.NoError(t, err)
	assert.Zero(t, moved)

	now = now.Add(2 * time.Minute)
	moved, err = q.MoveDelayedToReady(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	ready, err := q.GetQueueSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), ready)
	delayed, err := q.GetDelayedQueueSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), delayed)

	job, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "soon", job.ID)
}

func TestRedisMailQueue_ConnectionLost(t *testing.T) {
	srv, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	srv.Close()

	q := NewRedisMailQueue(client, "hiretrack:mail")
	err = q.Enqueue(context.Background(), &resume.NotificationJob{ID: "a"})
	assert.True(t, errx.IsCode(err, resume.CodeQueueEnqueueFailed), "got %v", err)
}

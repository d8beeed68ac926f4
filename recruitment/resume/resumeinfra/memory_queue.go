package resumeinfra

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Abraxas-365/hiretrack/recruitment/resume"
)

// MemoryMailQueue is an in-process resume.MailQueue used when Redis is not
// configured. Queued jobs are lost on restart.
type MemoryMailQueue struct {
	mu      sync.Mutex
	ready   []resume.NotificationJob
	delayed []delayedJob
	signal  chan struct{}
	now     func() time.Time
}

type delayedJob struct {
	job resume.NotificationJob
	due time.Time
}

func NewMemoryMailQueue() *MemoryMailQueue {
	return &MemoryMailQueue{
		signal: make(chan struct{}, 1),
		now:    time.Now,
	}
}

// WithClock replaces the time source used for delayed jobs
func (q *MemoryMailQueue) WithClock(now func() time.Time) *MemoryMailQueue {
	q.now = now
	return q
}

func (q *MemoryMailQueue) Enqueue(ctx context.Context, job *resume.NotificationJob) error {
	q.mu.Lock()
	q.ready = append(q.ready, *job)
	q.mu.Unlock()
	q.wake()
	return nil
}

func (q *MemoryMailQueue) Dequeue(ctx context.Context, timeout time.Duration) (*resume.NotificationJob, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		if job := q.pop(); job != nil {
			return job, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
			return nil, nil
		case <-q.signal:
		}
	}
}

func (q *MemoryMailQueue) pop() *resume.NotificationJob {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.ready) == 0 {
		return nil
	}
	job := q.ready[0]
	q.ready = q.ready[1:]
	return &job
}

func (q *MemoryMailQueue) EnqueueDelayed(ctx context.Context, job *resume.NotificationJob, delay time.Duration) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.delayed = append(q.delayed, delayedJob{job: *job, due: q.now().Add(delay)})
	return nil
}

func (q *MemoryMailQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	q.mu.Lock()
	now := q.now()
	sort.SliceStable(q.delayed, func(i, j int) bool { return q.delayed[i].due.Before(q.delayed[j].due) })

	moved := 0
	for moved < len(q.delayed) && !q.delayed[moved].due.After(now) {
		q.ready = append(q.ready, q.delayed[moved].job)
		moved++
	}
	q.delayed = q.delayed[moved:]
	q.mu.Unlock()

	if moved > 0 {
		q.wake()
	}
	return moved, nil
}

func (q *MemoryMailQueue) GetQueueSize(ctx context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int64(len(q.ready)), nil
}

func (q *MemoryMailQueue) GetDelayedQueueSize(ctx context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int64(len(q.delayed)), nil
}

func (q *MemoryMailQueue) wake() {
	select {
	case q.signal <- struct{}{}:
	default:
	}
}

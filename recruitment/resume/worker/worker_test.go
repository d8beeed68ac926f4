package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/hiretrack/pkg/mailx"
	"github.com/Abraxas-365/hiretrack/recruitment/resume"
	"github.com/Abraxas-365/hiretrack/recruitment/resume/resumeinfra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDeliverer struct {
	mu       sync.Mutex
	failures int
	calls    int
	done     chan struct{}
}

func (d *fakeDeliverer) Deliver(ctx context.Context, job *resume.NotificationJob) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if d.calls <= d.failures {
		return errors.New("smtp unavailable")
	}
	if d.done != nil {
		close(d.done)
		d.done = nil
	}
	return nil
}

func newJob() *resume.NotificationJob {
	return resume.NewNotificationJob(resume.NotifyResumeReceived, "r-1",
		mailx.Message{To: "asha@example.com", Subject: "hi"}, errors.New("first failure"), time.Now())
}

func TestProcess_SuccessDoesNotRequeue(t *testing.T) {
	ctx := context.Background()
	q := resumeinfra.NewMemoryMailQueue()
	w := NewMailWorker(&fakeDeliverer{}, q, 1)

	w.Process(ctx, newJob())

	delayed, _ := q.GetDelayedQueueSize(ctx)
	assert.Zero(t, delayed)
}

func TestProcess_FailureReschedules(t *testing.T) {
	ctx := context.Background()
	q := resumeinfra.NewMemoryMailQueue()
	w := NewMailWorker(&fakeDeliverer{failures: 1}, q, 1)

	job := newJob()
	w.Process(ctx, job)

	assert.Equal(t, 2, job.Attempts)
	assert.Equal(t, "smtp unavailable", job.LastError)
	delayed, _ := q.GetDelayedQueueSize(ctx)
	assert.Equal(t, int64(1), delayed)
}

func TestProcess_DropsAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	q := resumeinfra.NewMemoryMailQueue()
	w := NewMailWorker(&fakeDeliverer{failures: 100}, q, 1)

	job := newJob()
	job.Attempts = resume.DefaultMaxAttempts - 1
	w.Process(ctx, job)

	assert.Equal(t, resume.DefaultMaxAttempts, job.Attempts)
	delayed, _ := q.GetDelayedQueueSize(ctx)
	assert.Zero(t, delayed)
}

func TestStart_DrainsReadyQueue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q := resumeinfra.NewMemoryMailQueue()
	done := make(chan struct{})
	d := &fakeDeliverer{done: done}

	w := NewMailWorker(d, q, 2)
	w.pollTimeout = 10 * time.Millisecond
	w.Start(ctx)

	require.NoError(t, q.Enqueue(ctx, newJob()))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job was not delivered")
	}

	cancel()
	w.Wait()
}

package worker

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/hiretrack/pkg/logx"
	"github.com/Abraxas-365/hiretrack/recruitment/resume"
)

const (
	DefaultPollTimeout   = 5 * time.Second
	DefaultMoverInterval = 30 * time.Second
)

// Deliverer makes one delivery attempt for a queued notification
type Deliverer interface {
	Deliver(ctx context.Context, job *resume.NotificationJob) error
}

// MailWorker drains the notification retry queue
type MailWorker struct {
	deliverer     Deliverer
	queue         resume.MailQueue
	workers       int
	pollTimeout   time.Duration
	moverInterval time.Duration
	now           func() time.Time
	wg            sync.WaitGroup
}

func NewMailWorker(deliverer Deliverer, queue resume.MailQueue, workers int) *MailWorker {
	if workers < 1 {
		workers = 1
	}
	return &MailWorker{
		deliverer:     deliverer,
		queue:         queue,
		workers:       workers,
		pollTimeout:   DefaultPollTimeout,
		moverInterval: DefaultMoverInterval,
		now:           time.Now,
	}
}

// Start launches the pool. Goroutines exit when ctx is cancelled.
func (w *MailWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d mail workers", w.workers)

	w.wg.Add(w.workers + 1)
	go w.moveDelayedJobs(ctx)

	for i := 0; i < w.workers; i++ {
		go w.processJobs(ctx, i)
	}
}

// Wait blocks until every goroutine started by Start has returned
func (w *MailWorker) Wait() {
	w.wg.Wait()
}

func (w *MailWorker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	logx.Infof("Mail worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Infof("Mail worker %d stopping", workerID)
			return
		default:
			job, err := w.queue.Dequeue(ctx, w.pollTimeout)
			if err != nil {
				if ctx.Err() == nil {
					logx.Errorf("Mail worker %d dequeue error: %v", workerID, err)
				}
				continue
			}
			if job == nil {
				continue
			}

			w.Process(ctx, job)
		}
	}
}

// Process attempts delivery once and reschedules or drops the job on failure
func (w *MailWorker) Process(ctx context.Context, job *resume.NotificationJob) {
	logx.Debugf("Delivering %s job %s (attempt %d)", job.Kind, job.ID, job.Attempts+1)

	err := w.deliverer.Deliver(ctx, job)
	if err == nil {
		logx.Infof("Delivered %s email for resume %s after %d failed attempts", job.Kind, job.ResumeID, job.Attempts)
		return
	}

	job.RecordFailure(err, w.now())
	if !job.CanRetry() {
		logx.Errorf("Dropping %s email for resume %s after %d attempts: %v", job.Kind, job.ResumeID, job.Attempts, err)
		return
	}

	if err := w.queue.EnqueueDelayed(ctx, job, job.Backoff()); err != nil {
		logx.Errorf("Failed to reschedule job %s: %v", job.ID, err)
		return
	}
	logx.Warnf("Retrying %s email for resume %s in %s", job.Kind, job.ResumeID, job.Backoff())
}

func (w *MailWorker) moveDelayedJobs(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.moverInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed jobs: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed jobs to ready queue", count)
			}
		}
	}
}

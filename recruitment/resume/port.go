package resume

import (
	"context"
	"time"

	"github.com/Abraxas-365/hiretrack/pkg/kernel"
)

// MutateFunc edits a locked resume. Returning an error aborts the update.
type MutateFunc func(r *Resume) error

type Repository interface {
	// Create persists a resume and its initial history in one transaction
	Create(ctx context.Context, resume *Resume) error

	// Update locks the row, applies fn, then writes the row and any history
	// entries appended by fn. The stored state is returned.
	Update(ctx context.Context, id kernel.ResumeID, fn MutateFunc) (*Resume, error)

	// GetByID returns a resume with its history
	GetByID(ctx context.Context, id kernel.ResumeID) (*Resume, error)

	// Delete removes a resume and its history, returning the deleted record
	Delete(ctx context.Context, id kernel.ResumeID) (*Resume, error)

	// List returns a page ordered by creation time, newest first
	List(ctx context.Context, filter ListFilter, pagination kernel.PaginationOptions) (kernel.Paginated[Resume], error)

	// ListAll returns every matching resume without history, for exports
	ListAll(ctx context.Context, filter ListFilter) ([]Resume, error)

	// Exists checks whether a resume id is stored
	Exists(ctx context.Context, id kernel.ResumeID) (bool, error)
}

// MailQueue holds notifications waiting for another delivery attempt
type MailQueue interface {
	// Enqueue adds a job to the ready queue
	Enqueue(ctx context.Context, job *NotificationJob) error

	// Dequeue gets a job from the queue (blocking with timeout)
	Dequeue(ctx context.Context, timeout time.Duration) (*NotificationJob, error)

	// EnqueueDelayed schedules a job for later processing
	EnqueueDelayed(ctx context.Context, job *NotificationJob, delay time.Duration) error

	// MoveDelayedToReady moves due delayed jobs to the ready queue
	MoveDelayedToReady(ctx context.Context) (int, error)

	GetQueueSize(ctx context.Context) (int64, error)
	GetDelayedQueueSize(ctx context.Context) (int64, error)
}

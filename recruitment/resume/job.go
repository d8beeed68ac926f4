package resume

import (
	"time"

	"github.com/Abraxas-365/hiretrack/pkg/kernel"
	"github.com/Abraxas-365/hiretrack/pkg/mailx"
	"github.com/google/uuid"
)

const DefaultMaxAttempts = 5

type NotificationKind string

const (
	NotifyResumeReceived      NotificationKind = "resume_received"
	NotifyInterviewInvitation NotificationKind = "interview_invitation"
)

// NotificationJob is an email that failed after its mutation committed and
// is waiting to be retried
type NotificationJob struct {
	ID          string           `json:"id"`
	Kind        NotificationKind `json:"kind"`
	ResumeID    kernel.ResumeID  `json:"resume_id"`
	Message     mailx.Message    `json:"message"`
	Attempts    int              `json:"attempts"`
	MaxAttempts int              `json:"max_attempts"`
	LastError   string           `json:"last_error,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	NextRetryAt *time.Time       `json:"next_retry_at,omitempty"`
}

// NewNotificationJob records the first failed attempt
func NewNotificationJob(kind NotificationKind, resumeID kernel.ResumeID, msg mailx.Message, cause error, now time.Time) *NotificationJob {
	job := &NotificationJob{
		ID:          uuid.NewString(),
		Kind:        kind,
		ResumeID:    resumeID,
		Message:     msg,
		MaxAttempts: DefaultMaxAttempts,
		CreatedAt:   now,
	}
	job.RecordFailure(cause, now)
	return job
}

func (j *NotificationJob) CanRetry() bool {
	return j.Attempts < j.MaxAttempts
}

// RecordFailure counts an attempt and schedules the next one
func (j *NotificationJob) RecordFailure(cause error, now time.Time) {
	j.Attempts++
	if cause != nil {
		j.LastError = cause.Error()
	}
	next := now.Add(j.Backoff())
	j.NextRetryAt = &next
}

// Backoff doubles from one minute per attempt, capped at one hour
func (j *NotificationJob) Backoff() time.Duration {
	if j.Attempts <= 1 {
		return time.Minute
	}
	if j.Attempts > 7 {
		return time.Hour
	}
	d := time.Minute << (j.Attempts - 1)
	if d > time.Hour {
		return time.Hour
	}
	return d
}

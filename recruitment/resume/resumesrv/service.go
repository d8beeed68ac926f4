package resumesrv

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/Abraxas-365/hiretrack/pkg/errx"
	"github.com/Abraxas-365/hiretrack/pkg/fsx"
	"github.com/Abraxas-365/hiretrack/pkg/iam/auth"
	"github.com/Abraxas-365/hiretrack/pkg/kernel"
	"github.com/Abraxas-365/hiretrack/pkg/logx"
	"github.com/Abraxas-365/hiretrack/pkg/mailx"
	"github.com/Abraxas-365/hiretrack/recruitment/resume"
	"github.com/Abraxas-365/hiretrack/recruitment/resume/resumeexport"
	"github.com/google/uuid"
)

const MaxUploadSize = 10 << 20

var allowedExtensions = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

type Config struct {
	Company  string
	Location *time.Location
}

type Service struct {
	repo   resume.Repository
	files  fsx.FileSystem
	mailer mailx.Sender
	queue  resume.MailQueue
	cfg    Config
	now    func() time.Time
}

// NewService creates a new resume service. queue may be nil, in which case
// failed notifications are reported but never retried.
func NewService(
	repo resume.Repository,
	files fsx.FileSystem,
	mailer mailx.Sender,
	queue resume.MailQueue,
	cfg Config,
) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Service{
		repo:   repo,
		files:  files,
		mailer: mailer,
		queue:  queue,
		cfg:    cfg,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ============================================================================
// Create
// ============================================================================

// Create stores the optional file, persists the resume and sends a receipt
// to the candidate. A failed receipt yields the saved resume together with
// a NOTIFY_FAILED error.
func (s *Service) Create(ctx context.Context, req resume.CreateResumeRequest, file *resume.UploadedFile, actor auth.Actor) (*resume.ResumeResponse, error) {
	if err := authorize(actor, auth.RolesResumeCreate); err != nil {
		return nil, err
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.now()

	var stored *resume.StoredFile
	if file != nil {
		var err error
		stored, err = s.storeFile(ctx, file, now)
		if err != nil {
			return nil, err
		}
	}

	r, err := resume.NewResume(kernel.NewResumeID(uuid.NewString()), req.ToCandidateInfo(), stored, actor, now)
	if err != nil {
		s.discardFile(ctx, stored)
		return nil, err
	}

	if err := s.repo.Create(ctx, r); err != nil {
		s.discardFile(ctx, stored)
		return nil, storageErr(err)
	}
	logx.Infof("Resume %s created by %s", r.ID, actor.ID)

	resp := r.ToResponse()
	if err := s.notify(ctx, resume.NotifyResumeReceived, r, receiptMessage(r, s.cfg.Company)); err != nil {
		return &resp, err
	}
	return &resp, nil
}

func (s *Service) storeFile(ctx context.Context, file *resume.UploadedFile, now time.Time) (*resume.StoredFile, error) {
	ext := strings.ToLower(path.Ext(file.Name))
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, resume.ErrInvalidFileFormat().
			WithDetail("file_name", file.Name).
			WithDetail("supported_formats", []string{"pdf", "doc", "docx"})
	}
	if file.Size > MaxUploadSize {
		return nil, resume.ErrFileTooLarge().WithDetail("size", file.Size)
	}

	data, err := io.ReadAll(io.LimitReader(file.Content, MaxUploadSize+1))
	if err != nil {
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeStorageFailed, err)
	}
	if len(data) > MaxUploadSize {
		return nil, resume.ErrFileTooLarge().WithDetail("size", len(data))
	}

	key := s.files.Join("resumes", now.Format("2006"), now.Format("01"), uuid.NewString()+ext)
	if err := s.files.WriteFile(ctx, key, data); err != nil {
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeStorageFailed, err).
			WithDetail("file_name", file.Name)
	}

	return &resume.StoredFile{Name: file.Name, Key: kernel.FileKey(key)}, nil
}

// discardFile removes a blob whose resume was never saved
func (s *Service) discardFile(ctx context.Context, f *resume.StoredFile) {
	if f == nil {
		return
	}
	if err := s.files.DeleteFile(ctx, f.Key.String()); err != nil {
		logx.Warnf("Failed to remove orphaned file %s: %v", f.Key, err)
	}
}

// ============================================================================
// Queries
// ============================================================================

// List returns every resume to managers and only owned resumes to staff
func (s *Service) List(ctx context.Context, filter resume.ListFilter, pagination kernel.PaginationOptions, actor auth.Actor) (kernel.Paginated[resume.ResumeResponse], error) {
	if err := authorize(actor, auth.RolesResumeList); err != nil {
		return kernel.Paginated[resume.ResumeResponse]{}, err
	}
	if !actor.IsManager() {
		filter = filter.WithOwner(actor.ID)
	}
	return s.list(ctx, filter, pagination)
}

func (s *Service) ListMine(ctx context.Context, pagination kernel.PaginationOptions, actor auth.Actor) (kernel.Paginated[resume.ResumeResponse], error) {
	return s.list(ctx, resume.ListFilter{}.WithOwner(actor.ID), pagination)
}

func (s *Service) list(ctx context.Context, filter resume.ListFilter, pagination kernel.PaginationOptions) (kernel.Paginated[resume.ResumeResponse], error) {
	page, err := s.repo.List(ctx, filter, pagination.Normalize())
	if err != nil {
		return kernel.Paginated[resume.ResumeResponse]{}, storageErr(err)
	}
	return kernel.MapPaginated(page, func(r resume.Resume) resume.ResumeResponse {
		return r.ToResponse()
	}), nil
}

func (s *Service) Get(ctx context.Context, id kernel.ResumeID, actor auth.Actor) (*resume.ResumeResponse, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	if !r.CanBeViewedBy(actor) {
		return nil, resume.ErrAccessDenied().WithDetail("resume_id", id.String())
	}
	resp := r.ToResponse()
	return &resp, nil
}

// ============================================================================
// Mutations
// ============================================================================

// TransitionStatus moves a resume to any status and records the change
func (s *Service) TransitionStatus(ctx context.Context, id kernel.ResumeID, req resume.TransitionStatusRequest, actor auth.Actor) (*resume.ResumeResponse, error) {
	if err := authorize(actor, auth.RolesResumeTransit); err != nil {
		return nil, err
	}
	status, err := resume.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return s.mutate(ctx, id, func(r *resume.Resume) error {
		_, err := r.TransitionTo(status, req.Note, req.HRName, actor, now)
		return err
	})
}

// SetFeedback writes the slot owned by the actor's role
func (s *Service) SetFeedback(ctx context.Context, id kernel.ResumeID, req resume.SetFeedbackRequest, actor auth.Actor) (*resume.ResumeResponse, error) {
	if err := authorize(actor, auth.RolesResumeFeedback); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Feedback) == "" {
		return nil, resume.ErrInvalidFeedback()
	}

	now := s.now()
	return s.mutate(ctx, id, func(r *resume.Resume) error {
		if !r.CanBeViewedBy(actor) {
			return resume.ErrAccessDenied().WithDetail("resume_id", id.String())
		}
		_, err := r.SetFeedback(req.Feedback, actor, now)
		return err
	})
}

func (s *Service) AssignHROwner(ctx context.Context, id kernel.ResumeID, req resume.AssignHROwnerRequest, actor auth.Actor) (*resume.ResumeResponse, error) {
	if err := authorize(actor, auth.RolesResumeHROwner); err != nil {
		return nil, err
	}

	now := s.now()
	return s.mutate(ctx, id, func(r *resume.Resume) error {
		r.AssignHROwner(req.ScreenedBy, actor, now)
		return nil
	})
}

// ScheduleInterview records the interview then emails the invitation
func (s *Service) ScheduleInterview(ctx context.Context, id kernel.ResumeID, req resume.ScheduleInterviewRequest, actor auth.Actor) (*resume.ResumeResponse, error) {
	if err := authorize(actor, auth.RolesResumeInterview); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	var scheduled *resume.Resume
	resp, err := s.mutate(ctx, id, func(r *resume.Resume) error {
		if _, err := r.ScheduleInterview(req.ToDetails(), actor, now); err != nil {
			return err
		}
		scheduled = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.notify(ctx, resume.NotifyInterviewInvitation, scheduled, interviewMessage(scheduled, s.cfg.Company)); err != nil {
		return resp, err
	}
	return resp, nil
}

// Update corrects descriptive fields. Status and history are untouched
// apart from the audit entry.
func (s *Service) Update(ctx context.Context, id kernel.ResumeID, req resume.UpdateResumeRequest, actor auth.Actor) (*resume.ResumeResponse, error) {
	if err := authorize(actor, auth.RolesResumeEdit); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	update := req.ToDetailsUpdate()
	if update.IsEmpty() {
		return nil, resume.ErrInvalidResumeData().WithDetail("reason", "no fields to update")
	}

	now := s.now()
	return s.mutate(ctx, id, func(r *resume.Resume) error {
		_, err := r.ApplyDetails(update, actor, now)
		return err
	})
}

// Delete removes the resume, then its file. A file that cannot be removed
// is logged and left behind.
func (s *Service) Delete(ctx context.Context, id kernel.ResumeID, actor auth.Actor) error {
	if err := authorize(actor, auth.RolesResumeDelete); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return storageErr(err)
	}
	logx.Infof("Resume %s deleted by %s", id, actor.ID)

	if deleted.HasFile() {
		if err := s.files.DeleteFile(ctx, deleted.FileKey.String()); err != nil {
			logx.Warnf("Failed to delete file %s of resume %s: %v", deleted.FileKey, id, err)
		}
	}
	return nil
}

func (s *Service) mutate(ctx context.Context, id kernel.ResumeID, fn resume.MutateFunc) (*resume.ResumeResponse, error) {
	r, err := s.repo.Update(ctx, id, fn)
	if err != nil {
		return nil, storageErr(err)
	}
	resp := r.ToResponse()
	return &resp, nil
}

// ============================================================================
// Files
// ============================================================================

// Download opens the stored file. The caller must close the stream.
func (s *Service) Download(ctx context.Context, id kernel.ResumeID, actor auth.Actor) (*resume.DownloadResult, error) {
	if err := authorize(actor, auth.RolesResumeDownload); err != nil {
		return nil, err
	}

	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	if !r.CanBeDownloadedBy(actor) {
		return nil, resume.ErrAccessDenied().WithDetail("resume_id", id.String())
	}
	if !r.HasFile() {
		return nil, resume.ErrFileNotFound().WithDetail("resume_id", id.String())
	}

	stream, err := s.files.ReadFileStream(ctx, r.FileKey.String())
	if err != nil {
		if errors.Is(err, fsx.ErrNotExist) {
			logx.Warnf("File %s of resume %s is missing from storage", r.FileKey, id)
			return nil, resume.ErrFileNotFound().WithDetail("resume_id", id.String())
		}
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeStorageFailed, err)
	}

	name := r.ResumeFileName
	if name == "" {
		name = path.Base(r.FileKey.String())
	}
	return &resume.DownloadResult{
		Content:     stream,
		FileName:    name,
		ContentType: contentType(name),
	}, nil
}

func contentType(name string) string {
	if ct, ok := allowedExtensions[strings.ToLower(path.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// ============================================================================
// Export
// ============================================================================

type ExportResult struct {
	FileName string
	Content  []byte
}

// Export renders a workbook of every resume, or of the actor's own resumes
func (s *Service) Export(ctx context.Context, scope resume.ExportScope, actor auth.Actor) (*ExportResult, error) {
	filter := resume.ListFilter{}
	switch scope {
	case resume.ExportAll:
		if err := authorize(actor, auth.RolesResumeExport); err != nil {
			return nil, err
		}
	case resume.ExportMine:
		filter = filter.WithOwner(actor.ID)
	default:
		return nil, resume.ErrInvalidResumeData().WithDetail("scope", scope)
	}

	resumes, err := s.repo.ListAll(ctx, filter)
	if err != nil {
		return nil, storageErr(err)
	}

	var buf bytes.Buffer
	if err := resumeexport.WriteResumes(&buf, resumes, s.cfg.Location); err != nil {
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeExportFailed, err)
	}
	logx.Infof("Exported %d resumes (%s) for %s", len(resumes), scope, actor.ID)

	return &ExportResult{FileName: scope.FileName(), Content: buf.Bytes()}, nil
}

// ============================================================================
// Notifications
// ============================================================================

// notify sends msg once. On failure the message is queued for retry when a
// queue is configured, and a NOTIFY_FAILED error describes the outcome.
func (s *Service) notify(ctx context.Context, kind resume.NotificationKind, r *resume.Resume, msg mailx.Message) error {
	err := s.mailer.Send(ctx, msg)
	if err == nil {
		logx.Infof("Sent %s email for resume %s", kind, r.ID)
		return nil
	}
	logx.Warnf("Failed to send %s email for resume %s: %v", kind, r.ID, err)

	retry := false
	if !errors.Is(err, mailx.ErrDisabled) {
		retry = s.scheduleRetry(ctx, resume.NewNotificationJob(kind, r.ID, msg, err, s.now()))
	}

	return resume.ErrNotifyFailed().
		WithCause(err).
		WithDetail("kind", kind).
		WithDetail("recipient", msg.To).
		WithDetail("retry_scheduled", retry)
}

func (s *Service) scheduleRetry(ctx context.Context, job *resume.NotificationJob) bool {
	if s.queue == nil {
		return false
	}
	if err := s.queue.EnqueueDelayed(ctx, job, job.Backoff()); err != nil {
		logx.Errorf("Failed to queue %s retry for resume %s: %v", job.Kind, job.ResumeID, err)
		return false
	}
	return true
}

// Deliver makes one attempt at a queued notification
func (s *Service) Deliver(ctx context.Context, job *resume.NotificationJob) error {
	return s.mailer.Send(ctx, job.Message)
}

// ============================================================================
// Helpers
// ============================================================================

func authorize(actor auth.Actor, allowed []auth.Role) error {
	if auth.HasRole(actor.Role, allowed...) {
		return nil
	}
	return auth.ErrForbidden().
		WithDetail("role", actor.Role.ToExternal()).
		WithDetail("allowed", externalNames(allowed))
}

func externalNames(roles []auth.Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, r.ToExternal().String())
	}
	return out
}

// storageErr keeps domain errors and classifies everything else as a
// storage failure
func storageErr(err error) error {
	if _, ok := errx.As(err); ok {
		return err
	}
	return resume.ErrRegistry.NewWithCause(resume.CodeStorageFailed, err)
}

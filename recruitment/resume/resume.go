package resume

import (
	"fmt"
	"strings"
	"time"

	"github.com/Abraxas-365/hiretrack/pkg/iam/auth"
	"github.com/Abraxas-365/hiretrack/pkg/kernel"
)

// Status is the pipeline stage of a resume
type Status string

const (
	StatusAwaitingHR    Status = "awaiting_hr"
	StatusScreeningDone Status = "screening_done"
	StatusSelected      Status = "selected"
	StatusRejected      Status = "rejected"
)

func AllStatuses() []Status {
	return []Status{StatusAwaitingHR, StatusScreeningDone, StatusSelected, StatusRejected}
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAwaitingHR, StatusScreeningDone, StatusSelected, StatusRejected:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", ErrInvalidStatus().
			WithDetail("status", raw).
			WithDetail("allowed", AllStatuses())
	}
	return s, nil
}

// HistoryLabel is the free-form label of a history entry. It is one of the
// statuses or one of the event labels below.
type HistoryLabel string

const (
	LabelInterviewScheduled HistoryLabel = "interview_scheduled"
	LabelFeedbackUpdated    HistoryLabel = "feedback_updated"
	LabelHROwnerUpdated     HistoryLabel = "hr_owner_updated"
	LabelDetailsUpdated     HistoryLabel = "details_updated"
)

func LabelForStatus(s Status) HistoryLabel { return HistoryLabel(s) }

// HistoryEntry is one audit record. Seq is assigned by the repository; zero
// means the entry has not been persisted yet.
type HistoryEntry struct {
	Seq     int64         `json:"seq"`
	Status  HistoryLabel  `json:"status"`
	Note    string        `json:"note"`
	ActorID kernel.UserID `json:"by"`
	At      time.Time     `json:"at"`
}

func (h HistoryEntry) IsPersisted() bool { return h.Seq > 0 }

const (
	ModeOnline = "online"

	PlaceholderToBeConfirmed = "To be confirmed"
	PlaceholderLink          = "Link will be shared later"
	PlaceholderLocation      = "Office location will be shared later"
)

// Interview is the single most recent schedule; rescheduling replaces it
type Interview struct {
	Date        string        `json:"date"`
	Time        string        `json:"time"`
	Mode        string        `json:"mode"`
	Link        string        `json:"link"`
	Location    string        `json:"location"`
	Message     string        `json:"message"`
	ScheduledBy kernel.UserID `json:"scheduledBy"`
	ScheduledAt time.Time     `json:"scheduledAt"`
}

func (i Interview) IsOnline() bool {
	return strings.EqualFold(i.Mode, ModeOnline)
}

// Venue returns the link for online interviews and the location otherwise,
// falling back to a placeholder
func (i Interview) Venue() string {
	if i.IsOnline() {
		if i.Link != "" {
			return i.Link
		}
		return PlaceholderLink
	}
	if i.Location != "" {
		return i.Location
	}
	return PlaceholderLocation
}

func (i Interview) VenueLabel() string {
	if i.IsOnline() {
		return "Meeting Link"
	}
	return "Location"
}

type Resume struct {
	ID              kernel.ResumeID `json:"id"`
	CandidateName   string          `json:"candidateName"`
	Email           kernel.Email    `json:"email"`
	Phone           kernel.Phone    `json:"phone"`
	Position        string          `json:"position"`
	ExperienceYears *float64        `json:"experienceYears,omitempty"`

	Status           Status `json:"status"`
	EmployeeFeedback string `json:"employeeFeedback"`
	HRFeedback       string `json:"hrFeedback"`
	LatestFeedback   string `json:"latestFeedback"`
	HROwnerName      string `json:"screenedBy"`

	ResumeFileName string         `json:"resumeFileName,omitempty"`
	FileKey        kernel.FileKey `json:"-"`

	CreatedBy kernel.UserID  `json:"createdBy"`
	History   []HistoryEntry `json:"history"`
	Interview *Interview     `json:"interview,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CandidateInfo are the descriptive fields supplied at creation
type CandidateInfo struct {
	CandidateName   string
	Email           string
	Phone           string
	Position        string
	ExperienceYears *float64
}

// StoredFile references a blob already written to the file system
type StoredFile struct {
	Name string
	Key  kernel.FileKey
}

// NewResume builds a resume awaiting HR with its creation entry
func NewResume(id kernel.ResumeID, info CandidateInfo, file *StoredFile, actor auth.Actor, now time.Time) (*Resume, error) {
	name := strings.TrimSpace(info.CandidateName)
	email := kernel.NewEmail(info.Email)

	missing := map[string]any{}
	if name == "" {
		missing["candidateName"] = "required"
	}
	if email.IsEmpty() {
		missing["email"] = "required"
	}
	if len(missing) > 0 {
		return nil, ErrInvalidResumeData().WithDetail("fields", missing)
	}

	r := &Resume{
		ID:              id,
		CandidateName:   name,
		Email:           email,
		Phone:           kernel.NewPhone(info.Phone),
		Position:        strings.TrimSpace(info.Position),
		ExperienceYears: info.ExperienceYears,
		Status:          StatusAwaitingHR,
		CreatedBy:       actor.ID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if file != nil {
		r.ResumeFileName = file.Name
		r.FileKey = file.Key
	}
	r.appendHistory(LabelForStatus(StatusAwaitingHR), "Created", actor.ID, now)
	return r, nil
}

// ============================================================================
// Domain Methods
// ============================================================================

func (r *Resume) appendHistory(label HistoryLabel, note string, actorID kernel.UserID, now time.Time) HistoryEntry {
	entry := HistoryEntry{Status: label, Note: note, ActorID: actorID, At: now}
	r.History = append(r.History, entry)
	r.UpdatedAt = now
	return entry
}

// PendingHistory returns the entries appended since the resume was loaded
func (r *Resume) PendingHistory() []HistoryEntry {
	var pending []HistoryEntry
	for _, h := range r.History {
		if !h.IsPersisted() {
			pending = append(pending, h)
		}
	}
	return pending
}

// TransitionTo moves the resume to any status. There is no guard on the
// current status: every edge of the graph is allowed.
func (r *Resume) TransitionTo(status Status, note string, hrName *string, actor auth.Actor, now time.Time) (HistoryEntry, error) {
	if !status.IsValid() {
		return HistoryEntry{}, ErrInvalidStatus().WithDetail("status", status)
	}

	r.Status = status
	if hrName != nil && strings.TrimSpace(*hrName) != "" {
		r.HROwnerName = strings.TrimSpace(*hrName)
	}
	if strings.TrimSpace(note) == "" {
		note = "Status changed to " + status.String()
	}
	return r.appendHistory(LabelForStatus(status), note, actor.ID, now), nil
}

// SetFeedback writes the feedback slot owned by the actor's role and mirrors
// it into LatestFeedback
func (r *Resume) SetFeedback(text string, actor auth.Actor, now time.Time) (HistoryEntry, error) {
	if strings.TrimSpace(text) == "" {
		return HistoryEntry{}, ErrInvalidFeedback()
	}

	if actor.Role == auth.RoleStaff {
		r.EmployeeFeedback = text
	} else {
		r.HRFeedback = text
	}
	r.LatestFeedback = text

	note := "Feedback updated by " + actor.Role.ToExternal().String()
	return r.appendHistory(LabelFeedbackUpdated, note, actor.ID, now), nil
}

func (r *Resume) AssignHROwner(name string, actor auth.Actor, now time.Time) HistoryEntry {
	r.HROwnerName = strings.TrimSpace(name)
	note := "HR owner cleared"
	if r.HROwnerName != "" {
		note = "HR owner set to " + r.HROwnerName
	}
	return r.appendHistory(LabelHROwnerUpdated, note, actor.ID, now)
}

// InterviewDetails are the optional scheduling inputs
type InterviewDetails struct {
	Date     string
	Time     string
	Mode     string
	Link     string
	Location string
	Message  string
}

// ScheduleInterview replaces the interview record and logs the schedule
func (r *Resume) ScheduleInterview(d InterviewDetails, actor auth.Actor, now time.Time) (HistoryEntry, error) {
	if r.Email.IsEmpty() {
		return HistoryEntry{}, ErrMissingContact().WithDetail("resume_id", r.ID.String())
	}

	iv := Interview{
		Date:        orDefault(d.Date, PlaceholderToBeConfirmed),
		Time:        orDefault(d.Time, PlaceholderToBeConfirmed),
		Mode:        orDefault(d.Mode, ModeOnline),
		Link:        strings.TrimSpace(d.Link),
		Location:    strings.TrimSpace(d.Location),
		Message:     strings.TrimSpace(d.Message),
		ScheduledBy: actor.ID,
		ScheduledAt: now,
	}
	if iv.Message == "" {
		iv.Message = r.DefaultInterviewMessage()
	}
	r.Interview = &iv

	note := fmt.Sprintf("Interview scheduled on %s %s (%s)", iv.Date, iv.Time, iv.Mode)
	return r.appendHistory(LabelInterviewScheduled, note, actor.ID, now), nil
}

func (r *Resume) DefaultInterviewMessage() string {
	name := r.CandidateName
	if name == "" {
		name = "Candidate"
	}
	return fmt.Sprintf("Dear %s,\n\nYou have been shortlisted for an interview. Please find the details below.", name)
}

// DetailsUpdate carries the descriptive fields an admin may correct.
// Nil fields are left unchanged.
type DetailsUpdate struct {
	CandidateName   *string
	Email           *string
	Phone           *string
	Position        *string
	ExperienceYears *float64
}

func (u DetailsUpdate) IsEmpty() bool {
	return u.CandidateName == nil && u.Email == nil && u.Phone == nil && u.Position == nil && u.ExperienceYears == nil
}

// ApplyDetails corrects descriptive fields without touching status
func (r *Resume) ApplyDetails(u DetailsUpdate, actor auth.Actor, now time.Time) (HistoryEntry, error) {
	if u.IsEmpty() {
		return HistoryEntry{}, ErrInvalidResumeData().WithDetail("reason", "no fields to update")
	}

	var changed []string
	if u.CandidateName != nil {
		name := strings.TrimSpace(*u.CandidateName)
		if name == "" {
			return HistoryEntry{}, ErrInvalidResumeData().WithDetail("candidateName", "required")
		}
		r.CandidateName = name
		changed = append(changed, "candidateName")
	}
	if u.Email != nil {
		email := kernel.NewEmail(*u.Email)
		if email.IsEmpty() || !email.IsValid() {
			return HistoryEntry{}, ErrInvalidResumeData().WithDetail("email", "invalid")
		}
		r.Email = email
		changed = append(changed, "email")
	}
	if u.Phone != nil {
		r.Phone = kernel.NewPhone(*u.Phone)
		changed = append(changed, "phone")
	}
	if u.Position != nil {
		r.Position = strings.TrimSpace(*u.Position)
		changed = append(changed, "position")
	}
	if u.ExperienceYears != nil {
		if *u.ExperienceYears < 0 {
			return HistoryEntry{}, ErrInvalidResumeData().WithDetail("experienceYears", "must be >= 0")
		}
		years := *u.ExperienceYears
		r.ExperienceYears = &years
		changed = append(changed, "experienceYears")
	}

	note := "Updated " + strings.Join(changed, ", ")
	return r.appendHistory(LabelDetailsUpdated, note, actor.ID, now), nil
}

// ============================================================================
// Access rules
// ============================================================================

// CanBeViewedBy: managers see everything, staff only what they created
func (r *Resume) CanBeViewedBy(actor auth.Actor) bool {
	return actor.IsManager() || actor.Owns(r.CreatedBy)
}

// CanBeDownloadedBy allows admin, hr, and staff who own the record
func (r *Resume) CanBeDownloadedBy(actor auth.Actor) bool {
	return r.CanBeViewedBy(actor)
}

func (r *Resume) HasFile() bool {
	return !r.FileKey.IsEmpty()
}

func orDefault(v, def string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return def
}

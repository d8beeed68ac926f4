package resume

import (
	"io"
	"strings"
	"time"

	"github.com/Abraxas-365/hiretrack/pkg/errx"
	"github.com/Abraxas-365/hiretrack/pkg/kernel"
	"github.com/Abraxas-365/hiretrack/pkg/validatex"
)

// ============================================================================
// Request DTOs
// ============================================================================

// CreateResumeRequest carries the form fields of an upload
type CreateResumeRequest struct {
	CandidateName   string   `json:"candidateName" validate:"required"`
	Email           string   `json:"email" validate:"required,email"`
	Phone           string   `json:"phone" validate:"omitempty,max=32"`
	Position        string   `json:"position" validate:"omitempty,max=200"`
	ExperienceYears *float64 `json:"experienceYears" validate:"omitempty,gte=0,lte=80"`
}

func (r *CreateResumeRequest) Normalize() {
	r.CandidateName = strings.TrimSpace(r.CandidateName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Position = strings.TrimSpace(r.Position)
}

func (r CreateResumeRequest) Validate() error {
	return validationError(r)
}

func (r CreateResumeRequest) ToCandidateInfo() CandidateInfo {
	return CandidateInfo{
		CandidateName:   r.CandidateName,
		Email:           r.Email,
		Phone:           r.Phone,
		Position:        r.Position,
		ExperienceYears: r.ExperienceYears,
	}
}

// UploadedFile is an attachment received with a create request
type UploadedFile struct {
	Name    string
	Size    int64
	Content io.Reader
}

type TransitionStatusRequest struct {
	Status string  `json:"status" validate:"required"`
	Note   string  `json:"note"`
	HRName *string `json:"hrName"`
}

type SetFeedbackRequest struct {
	Feedback string `json:"feedback"`
}

type AssignHROwnerRequest struct {
	ScreenedBy string `json:"screenedBy"`
}

type ScheduleInterviewRequest struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Mode     string `json:"mode" validate:"omitempty,max=50"`
	Link     string `json:"link" validate:"omitempty,max=500"`
	Location string `json:"location" validate:"omitempty,max=500"`
	Message  string `json:"message" validate:"omitempty,max=5000"`
}

func (r ScheduleInterviewRequest) Validate() error {
	return validationError(r)
}

func (r ScheduleInterviewRequest) ToDetails() InterviewDetails {
	return InterviewDetails{
		Date:     r.Date,
		Time:     r.Time,
		Mode:     r.Mode,
		Link:     r.Link,
		Location: r.Location,
		Message:  r.Message,
	}
}

// UpdateResumeRequest changes only the supplied fields
type UpdateResumeRequest struct {
	CandidateName   *string  `json:"candidateName,omitempty"`
	Email           *string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone           *string  `json:"phone,omitempty" validate:"omitempty,max=32"`
	Position        *string  `json:"position,omitempty" validate:"omitempty,max=200"`
	ExperienceYears *float64 `json:"experienceYears,omitempty" validate:"omitempty,gte=0,lte=80"`
}

func (r UpdateResumeRequest) Validate() error {
	return validationError(r)
}

func (r UpdateResumeRequest) ToDetailsUpdate() DetailsUpdate {
	return DetailsUpdate{
		CandidateName:   r.CandidateName,
		Email:           r.Email,
		Phone:           r.Phone,
		Position:        r.Position,
		ExperienceYears: r.ExperienceYears,
	}
}

// ListFilter narrows listings. Staff listings are always pinned to the caller.
type ListFilter struct {
	Status    *Status
	Query     string
	CreatedBy *kernel.UserID
}

func (f ListFilter) WithOwner(id kernel.UserID) ListFilter {
	f.CreatedBy = &id
	return f
}

// ExportScope selects which resumes an export contains
type ExportScope string

const (
	ExportAll  ExportScope = "all"
	ExportMine ExportScope = "mine"
)

func (s ExportScope) FileName() string {
	return "resumes_" + string(s) + ".xlsx"
}

// ============================================================================
// Response DTOs
// ============================================================================

type ResumeResponse struct {
	ID               kernel.ResumeID `json:"id"`
	CandidateName    string          `json:"candidateName"`
	Email            string          `json:"email"`
	Phone            string          `json:"phone"`
	Position         string          `json:"position"`
	ExperienceYears  *float64        `json:"experienceYears,omitempty"`
	Status           Status          `json:"status"`
	EmployeeFeedback string          `json:"employeeFeedback"`
	HRFeedback       string          `json:"hrFeedback"`
	LatestFeedback   string          `json:"latestFeedback"`
	ScreenedBy       string          `json:"screenedBy"`
	ResumeFileName   string          `json:"resumeFileName,omitempty"`
	HasFile          bool            `json:"hasFile"`
	CreatedBy        kernel.UserID   `json:"createdBy"`
	History          []HistoryEntry  `json:"history"`
	Interview        *Interview      `json:"interview,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

func (r *Resume) ToResponse() ResumeResponse {
	history := r.History
	if history == nil {
		history = []HistoryEntry{}
	}
	return ResumeResponse{
		ID:               r.ID,
		CandidateName:    r.CandidateName,
		Email:            r.Email.String(),
		Phone:            r.Phone.String(),
		Position:         r.Position,
		ExperienceYears:  r.ExperienceYears,
		Status:           r.Status,
		EmployeeFeedback: r.EmployeeFeedback,
		HRFeedback:       r.HRFeedback,
		LatestFeedback:   r.LatestFeedback,
		ScreenedBy:       r.HROwnerName,
		ResumeFileName:   r.ResumeFileName,
		HasFile:          r.HasFile(),
		CreatedBy:        r.CreatedBy,
		History:          history,
		Interview:        r.Interview,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// NotificationStatus describes an undelivered notification in a partial
// success response
type NotificationStatus struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// PartialSuccessResponse is returned when a mutation committed but its email
// did not go out
type PartialSuccessResponse struct {
	Resume       ResumeResponse     `json:"resume"`
	Notification NotificationStatus `json:"notification"`
}

func NewPartialSuccess(r ResumeResponse, err error) PartialSuccessResponse {
	resp := PartialSuccessResponse{Resume: r}
	if e, ok := errx.As(err); ok {
		resp.Notification = NotificationStatus{Code: e.Code, Message: e.Message, Details: e.Details}
	} else if err != nil {
		resp.Notification = NotificationStatus{Code: CodeNotifyFailed.String(), Message: err.Error()}
	}
	return resp
}

// DownloadResult is an open stream over a stored resume file
type DownloadResult struct {
	Content     io.ReadCloser
	FileName    string
	ContentType string
}

func validationError(s any) error {
	fields := validatex.Struct(s)
	if fields == nil {
		return nil
	}
	return ErrInvalidResumeData().WithDetails(validatex.Details(fields))
}

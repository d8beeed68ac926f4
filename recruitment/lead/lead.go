package lead

import (
	"strings"
	"time"

	"github.com/Abraxas-365/hiretrack/pkg/kernel"
)

// Status tracks a lead from first contact to conversion
type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in_progress"
	StatusConverted  Status = "converted"
	StatusDropped    Status = "dropped"
)

func AllStatuses() []Status {
	return []Status{StatusNew, StatusInProgress, StatusConverted, StatusDropped}
}

func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusConverted, StatusDropped:
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

// Lead is a prospective candidate who has not necessarily applied yet
type Lead struct {
	ID        kernel.LeadID    `db:"id" json:"id"`
	Name      string           `db:"name" json:"name"`
	Email     kernel.Email     `db:"email" json:"email"`
	Phone     kernel.Phone     `db:"phone" json:"phone"`
	Source    string           `db:"source" json:"source"`
	Position  string           `db:"position" json:"position"`
	Notes     string           `db:"notes" json:"notes"`
	Status    Status           `db:"status" json:"status"`
	ResumeID  *kernel.ResumeID `db:"resume_id" json:"resumeId,omitempty"`
	CreatedBy kernel.UserID    `db:"created_by" json:"createdBy"`
	CreatedAt time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time        `db:"updated_at" json:"updatedAt"`
}

// ============================================================================
// Domain Methods
// ============================================================================

func NewLead(id kernel.LeadID, req CreateLeadRequest, createdBy kernel.UserID, now time.Time) (*Lead, error) {
	l := &Lead{
		ID:        id,
		Name:      strings.TrimSpace(req.Name),
		Email:     kernel.NewEmail(req.Email),
		Phone:     kernel.NewPhone(req.Phone),
		Source:    strings.TrimSpace(req.Source),
		Position:  strings.TrimSpace(req.Position),
		Notes:     strings.TrimSpace(req.Notes),
		Status:    StatusNew,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := l.validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Apply changes only the supplied fields, status included
func (l *Lead) Apply(upd Update, now time.Time) error {
	if upd.IsEmpty() {
		return ErrInvalidLeadData().WithDetail("reason", "no fields to update")
	}

	next := *l
	if upd.Name != nil {
		next.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Email != nil {
		next.Email = kernel.NewEmail(*upd.Email)
	}
	if upd.Phone != nil {
		next.Phone = kernel.NewPhone(*upd.Phone)
	}
	if upd.Source != nil {
		next.Source = strings.TrimSpace(*upd.Source)
	}
	if upd.Position != nil {
		next.Position = strings.TrimSpace(*upd.Position)
	}
	if upd.Notes != nil {
		next.Notes = strings.TrimSpace(*upd.Notes)
	}
	if upd.Status != nil {
		status, err := ParseStatus(*upd.Status)
		if err != nil {
			return err
		}
		next.Status = status
	}
	if err := next.validate(); err != nil {
		return err
	}

	next.UpdatedAt = now
	*l = next
	return nil
}

// Convert marks the lead converted and links the resume created for it
func (l *Lead) Convert(resumeID kernel.ResumeID, now time.Time) {
	l.Status = StatusConverted
	l.ResumeID = &resumeID
	l.UpdatedAt = now
}

func (l *Lead) IsConverted() bool {
	return l.Status == StatusConverted
}

func (l *Lead) validate() error {
	fields := map[string]any{}
	if l.Name == "" {
		fields["name"] = "required"
	}
	if !l.Email.IsEmpty() && !l.Email.IsValid() {
		fields["email"] = "email"
	}
	if len(fields) > 0 {
		return ErrInvalidLeadData().WithDetail("fields", fields)
	}
	return nil
}

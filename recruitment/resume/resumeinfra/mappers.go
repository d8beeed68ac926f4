package resumeinfra

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Abraxas-365/hiretrack/pkg/kernel"
	"github.com/Abraxas-365/hiretrack/recruitment/resume"
)

const resumeColumns = `
	id, candidate_name, email, phone, position, experience_years,
	status, employee_feedback, hr_feedback, latest_feedback, hr_owner_name,
	resume_file_name, file_key, created_by, interview,
	created_at, updated_at`

// resumeRow represents a row from the resumes table
type resumeRow struct {
	ID               string          `db:"id"`
	CandidateName    string          `db:"candidate_name"`
	Email            string          `db:"email"`
	Phone            string          `db:"phone"`
	Position         string          `db:"position"`
	ExperienceYears  sql.NullFloat64 `db:"experience_years"`
	Status           string          `db:"status"`
	EmployeeFeedback string          `db:"employee_feedback"`
	HRFeedback       string          `db:"hr_feedback"`
	LatestFeedback   string          `db:"latest_feedback"`
	HROwnerName      string          `db:"hr_owner_name"`
	ResumeFileName   string          `db:"resume_file_name"`
	FileKey          string          `db:"file_key"`
	CreatedBy        string          `db:"created_by"`
	Interview        sql.NullString  `db:"interview"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

// historyRow represents a row from the resume_history table
type historyRow struct {
	Seq      int64     `db:"seq"`
	ResumeID string    `db:"resume_id"`
	Status   string    `db:"status"`
	Note     string    `db:"note"`
	ActorID  string    `db:"actor_id"`
	At       time.Time `db:"at"`
}

// ToDomain converts a resumeRow to a resume.Resume domain model
func (r *resumeRow) ToDomain() (*resume.Resume, error) {
	model := &resume.Resume{
		ID:               kernel.ResumeID(r.ID),
		CandidateName:    r.CandidateName,
		Email:            kernel.Email(r.Email),
		Phone:            kernel.Phone(r.Phone),
		Position:         r.Position,
		Status:           resume.Status(r.Status),
		EmployeeFeedback: r.EmployeeFeedback,
		HRFeedback:       r.HRFeedback,
		LatestFeedback:   r.LatestFeedback,
		HROwnerName:      r.HROwnerName,
		ResumeFileName:   r.ResumeFileName,
		FileKey:          kernel.FileKey(r.FileKey),
		CreatedBy:        kernel.UserID(r.CreatedBy),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
	if r.ExperienceYears.Valid {
		years := r.ExperienceYears.Float64
		model.ExperienceYears = &years
	}

	if r.Interview.Valid && r.Interview.String != "null" {
		var iv resume.Interview
		if err := json.Unmarshal([]byte(r.Interview.String), &iv); err != nil {
			return nil, fmt.Errorf("failed to unmarshal interview: %w", err)
		}
		model.Interview = &iv
	}

	return model, nil
}

// fromDomain converts a resume.Resume domain model to a resumeRow
func fromDomain(m *resume.Resume) (*resumeRow, error) {
	row := &resumeRow{
		ID:               m.ID.String(),
		CandidateName:    m.CandidateName,
		Email:            m.Email.String(),
		Phone:            m.Phone.String(),
		Position:         m.Position,
		Status:           m.Status.String(),
		EmployeeFeedback: m.EmployeeFeedback,
		HRFeedback:       m.HRFeedback,
		LatestFeedback:   m.LatestFeedback,
		HROwnerName:      m.HROwnerName,
		ResumeFileName:   m.ResumeFileName,
		FileKey:          m.FileKey.String(),
		CreatedBy:        m.CreatedBy.String(),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.ExperienceYears != nil {
		row.ExperienceYears = sql.NullFloat64{Float64: *m.ExperienceYears, Valid: true}
	}
	if m.Interview != nil {
		data, err := json.Marshal(m.Interview)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal interview: %w", err)
		}
		row.Interview = sql.NullString{String: string(data), Valid: true}
	}
	return row, nil
}

func (h historyRow) ToDomain() resume.HistoryEntry {
	return resume.HistoryEntry{
		Seq:     h.Seq,
		Status:  resume.HistoryLabel(h.Status),
		Note:    h.Note,
		ActorID: kernel.UserID(h.ActorID),
		At:      h.At,
	}
}

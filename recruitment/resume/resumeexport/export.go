package resumeexport

import (
	"fmt"
	"io"
	"time"

	"github.com/Abraxas-365/hiretrack/recruitment/resume"
	"github.com/xuri/excelize/v2"
)

const (
	SheetName  = "Resumes"
	TimeLayout = "2006-01-02 15:04:05"
)

var Headers = []string{
	"Candidate Name",
	"Email",
	"Phone",
	"Position",
	"Experience (years)",
	"Status",
	"Employee Feedback",
	"HR Feedback",
	"Created At",
}

// Row projects a resume onto the export columns. Experience is a numeric
// cell when known and blank otherwise.
func Row(r resume.Resume, loc *time.Location) []any {
	if loc == nil {
		loc = time.UTC
	}
	var experience any = ""
	if r.ExperienceYears != nil {
		experience = *r.ExperienceYears
	}
	return []any{
		r.CandidateName,
		r.Email.String(),
		r.Phone.String(),
		r.Position,
		experience,
		r.Status.String(),
		r.EmployeeFeedback,
		r.HRFeedback,
		r.CreatedAt.In(loc).Format(TimeLayout),
	}
}

// WriteResumes writes a single sheet workbook with a header row and one row
// per resume, in the given order
func WriteResumes(w io.Writer, resumes []resume.Resume, loc *time.Location) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("failed to open sheet writer: %w", err)
	}

	header := make([]any, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range resumes {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, Row(r, loc)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

package resumesrv

import (
	"fmt"
	"html"
	"strings"

	"github.com/Abraxas-365/hiretrack/pkg/mailx"
	"github.com/Abraxas-365/hiretrack/recruitment/resume"
)

// ============================================================================
// Email templates
// ============================================================================

func receiptMessage(r *resume.Resume, company string) mailx.Message {
	name := r.CandidateName
	if name == "" {
		name = "Candidate"
	}

	position := ""
	if r.Position != "" {
		position = " for the <strong>" + html.EscapeString(r.Position) + "</strong> position"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<p>Dear %s,</p>", html.EscapeString(name))
	fmt.Fprintf(&b, "<p>Thank you for your interest. We have received your resume%s and our HR team will review it shortly.</p>", position)
	b.WriteString(signature(company))

	return mailx.Message{
		To:      r.Email.String(),
		Subject: "Application Received - " + company,
		HTML:    b.String(),
	}
}

func interviewMessage(r *resume.Resume, company string) mailx.Message {
	iv := r.Interview

	var b strings.Builder
	fmt.Fprintf(&b, "<p>%s</p>", strings.ReplaceAll(html.EscapeString(iv.Message), "\n", "<br/>"))
	b.WriteString("<p>")
	fmt.Fprintf(&b, "<strong>Date:</strong> %s<br/>", html.EscapeString(iv.Date))
	fmt.Fprintf(&b, "<strong>Time:</strong> %s<br/>", html.EscapeString(iv.Time))
	fmt.Fprintf(&b, "<strong>Mode:</strong> %s<br/>", html.EscapeString(iv.Mode))
	fmt.Fprintf(&b, "<strong>%s:</strong> %s", iv.VenueLabel(), html.EscapeString(iv.Venue()))
	b.WriteString("</p>")
	b.WriteString(signature(company))

	return mailx.Message{
		To:      r.Email.String(),
		Subject: "Interview Schedule - " + company,
		HTML:    b.String(),
	}
}

func signature(company string) string {
	return "<p>Regards,<br/>HR Team<br/>" + html.EscapeString(company) + "</p>"
}

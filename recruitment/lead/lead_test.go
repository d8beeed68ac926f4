package lead_test

import (
	"testing"
	"time"

	"github.com/Abraxas-365/hiretrack/pkg/errx"
	"github.com/Abraxas-365/hiretrack/pkg/kernel"
	"github.com/Abraxas-365/hiretrack/recruitment/lead"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func TestNewLead(t *testing.T) {
	l, err := lead.NewLead("l1", lead.CreateLeadRequest{
		Name: " Asha ", Email: " Asha@Example.com", Source: "Referral",
	}, "hr-1", now)
	require.NoError(t, err)
	assert.Equal(t, "Asha", l.Name)
	assert.Equal(t, kernel.Email("asha@example.com"), l.Email)
	assert.Equal(t, lead.StatusNew, l.Status)
	assert.Nil(t, l.ResumeID)

	_, err = lead.NewLead("l2", lead.CreateLeadRequest{Name: "  "}, "hr-1", now)
	assert.True(t, errx.IsCode(err, lead.CodeInvalidLeadData))

	l, err = lead.NewLead("l3", lead.CreateLeadRequest{Name: "No Email"}, "hr-1", now)
	require.NoError(t, err)
	assert.True(t, l.Email.IsEmpty())
}

func TestParseStatus(t *testing.T) {
	for _, s := range lead.AllStatuses() {
		got, err := lead.ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := lead.ParseStatus("hired")
	assert.True(t, errx.IsCode(err, lead.CodeInvalidStatus))
}

func TestApply(t *testing.T) {
	l, err := lead.NewLead("l1", lead.CreateLeadRequest{Name: "Asha"}, "hr-1", now)
	require.NoError(t, err)

	later := now.Add(time.Minute)
	require.NoError(t, l.Apply(lead.Update{Status: strPtr("in_progress"), Notes: strPtr("called")}, later))
	assert.Equal(t, lead.StatusInProgress, l.Status)
	assert.Equal(t, "called", l.Notes)
	assert.Equal(t, later, l.UpdatedAt)

	err = l.Apply(lead.Update{Status: strPtr("hired")}, later)
	assert.True(t, errx.IsCode(err, lead.CodeInvalidStatus))
	assert.Equal(t, lead.StatusInProgress, l.Status)

	err = l.Apply(lead.Update{}, later)
	assert.True(t, errx.IsCode(err, lead.CodeInvalidLeadData))

	err = l.Apply(lead.Update{Email: strPtr("not-an-email")}, later)
	assert.True(t, errx.IsCode(err, lead.CodeInvalidLeadData))
}

func TestConvert(t *testing.T) {
	l, err := lead.NewLead("l1", lead.CreateLeadRequest{Name: "Asha"}, "hr-1", now)
	require.NoError(t, err)

	l.Convert("r-1", now.Add(time.Hour))
	assert.True(t, l.IsConverted())
	require.NotNil(t, l.ResumeID)
	assert.Equal(t, kernel.ResumeID("r-1"), *l.ResumeID)
}

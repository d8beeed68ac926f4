package employee_test

import (
	"testing"
	"time"

	"github.com/Abraxas-365/hiretrack/pkg/errx"
	"github.com/Abraxas-365/hiretrack/pkg/iam/auth"
	"github.com/Abraxas-365/hiretrack/pkg/kernel"
	"github.com/Abraxas-365/hiretrack/recruitment/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    auth.Role
		wantErr bool
	}{
		{"", auth.RoleStaff, false},
		{"employee", auth.RoleStaff, false},
		{"HR", auth.RoleHR, false},
		{"admin", "", true},
		{"staff", "", true},
		{"boss", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := employee.ParseRole(tt.in)
			if tt.wantErr {
				assert.True(t, errx.IsCode(err, employee.CodeInvalidRole))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewEmployee_RequiresFields(t *testing.T) {
	_, err := employee.NewEmployee("e1", " ", "bad", auth.RoleStaff, "", "u1", now)
	require.True(t, errx.IsCode(err, employee.CodeInvalidEmployeeData))

	e, _ := errx.As(err)
	fields := e.Details["fields"].(map[string]any)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "department")
}

func TestApply(t *testing.T) {
	e, err := employee.NewEmployee("e1", "Asha", kernel.NewEmail("asha@example.com"), auth.RoleStaff, "Sales", "u1", now)
	require.NoError(t, err)

	later := now.Add(time.Hour)
	require.NoError(t, e.Apply(employee.Update{Department: strPtr("Ops"), Role: strPtr("hr")}, later))
	assert.Equal(t, "Ops", e.Department)
	assert.Equal(t, auth.RoleHR, e.Role)
	assert.Equal(t, "Asha", e.Name)
	assert.Equal(t, later, e.UpdatedAt)

	err = e.Apply(employee.Update{}, later)
	assert.True(t, errx.IsCode(err, employee.CodeInvalidEmployeeData))

	err = e.Apply(employee.Update{Name: strPtr(""), Department: strPtr("Legal")}, later)
	assert.True(t, errx.IsCode(err, employee.CodeInvalidEmployeeData))
	assert.Equal(t, "Ops", e.Department, "failed update must leave the entry unchanged")

	err = e.Apply(employee.Update{Role: strPtr("admin")}, later)
	assert.True(t, errx.IsCode(err, employee.CodeInvalidRole))
}

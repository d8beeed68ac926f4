package employee

import (
	"strings"
	"time"

	"github.com/Abraxas-365/hiretrack/pkg/iam/auth"
	"github.com/Abraxas-365/hiretrack/pkg/kernel"
)

// Employee is a roster entry. It is independent of login accounts.
type Employee struct {
	ID         kernel.EmployeeID `db:"id" json:"id"`
	Name       string            `db:"name" json:"name"`
	Email      kernel.Email      `db:"email" json:"email"`
	Role       auth.Role         `db:"role" json:"role"`
	Department string            `db:"department" json:"department"`
	JoinDate   time.Time         `db:"join_date" json:"joinDate"`
	CreatedBy  kernel.UserID     `db:"created_by" json:"createdBy"`
	CreatedAt  time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time         `db:"updated_at" json:"updatedAt"`
}

// ParseRole accepts the roster roles, employee and hr. Empty means employee.
func ParseRole(raw string) (auth.Role, error) {
	if strings.TrimSpace(raw) == "" {
		return auth.RoleStaff, nil
	}
	role, err := auth.ParseExternal(raw)
	if err != nil || role == auth.RoleAdmin {
		return "", ErrInvalidRole().
			WithDetail("role", raw).
			WithDetail("allowed", []auth.ExternalRole{auth.ExternalEmployee, auth.ExternalHR})
	}
	return role, nil
}

// ============================================================================
// Domain Methods
// ============================================================================

func NewEmployee(id kernel.EmployeeID, name string, email kernel.Email, role auth.Role, department string, createdBy kernel.UserID, now time.Time) (*Employee, error) {
	e := &Employee{
		ID:         id,
		Name:       strings.TrimSpace(name),
		Email:      email,
		Role:       role,
		Department: strings.TrimSpace(department),
		JoinDate:   now,
		CreatedBy:  createdBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Apply changes only the supplied fields
func (e *Employee) Apply(upd Update, now time.Time) error {
	if upd.IsEmpty() {
		return ErrInvalidEmployeeData().WithDetail("reason", "no fields to update")
	}

	next := *e
	if upd.Name != nil {
		next.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Email != nil {
		next.Email = kernel.NewEmail(*upd.Email)
	}
	if upd.Department != nil {
		next.Department = strings.TrimSpace(*upd.Department)
	}
	if upd.Role != nil {
		role, err := ParseRole(*upd.Role)
		if err != nil {
			return err
		}
		next.Role = role
	}
	if err := next.validate(); err != nil {
		return err
	}

	next.UpdatedAt = now
	*e = next
	return nil
}

func (e *Employee) validate() error {
	fields := map[string]any{}
	if e.Name == "" {
		fields["name"] = "required"
	}
	if !e.Email.IsValid() {
		fields["email"] = "email"
	}
	if e.Department == "" {
		fields["department"] = "required"
	}
	if len(fields) > 0 {
		return ErrInvalidEmployeeData().WithDetail("fields", fields)
	}
	return nil
}

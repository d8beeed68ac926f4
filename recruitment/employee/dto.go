package employee

import (
	"time"

	"github.com/Abraxas-365/hiretrack/pkg/iam/auth"
	"github.com/Abraxas-365/hiretrack/pkg/kernel"
	"github.com/Abraxas-365/hiretrack/pkg/validatex"
)

// CreateEmployeeRequest - role is employee or hr, employee when omitted
type CreateEmployeeRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Department string `json:"department" validate:"required"`
	Role       string `json:"role"`
}

func (r CreateEmployeeRequest) Validate() error {
	return validationError(r)
}

// UpdateEmployeeRequest - only supplied fields change
type UpdateEmployeeRequest struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Department *string `json:"department,omitempty"`
	Role       *string `json:"role,omitempty"`
}

func (r UpdateEmployeeRequest) Validate() error {
	return validationError(r)
}

func (r UpdateEmployeeRequest) ToUpdate() Update {
	return Update{Name: r.Name, Email: r.Email, Department: r.Department, Role: r.Role}
}

// Update is the set of optional field changes
type Update struct {
	Name       *string
	Email      *string
	Department *string
	Role       *string
}

func (u Update) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Department == nil && u.Role == nil
}

type EmployeeResponse struct {
	ID         kernel.EmployeeID `json:"id"`
	Name       string            `json:"name"`
	Email      kernel.Email      `json:"email"`
	Role       auth.ExternalRole `json:"role"`
	Department string            `json:"department"`
	JoinDate   time.Time         `json:"joinDate"`
	CreatedBy  kernel.UserID     `json:"createdBy"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

func (e *Employee) ToResponse() EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Role:       e.Role.ToExternal(),
		Department: e.Department,
		JoinDate:   e.JoinDate,
		CreatedBy:  e.CreatedBy,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func validationError(s any) error {
	fields := validatex.Struct(s)
	if fields == nil {
		return nil
	}
	return ErrInvalidEmployeeData().WithDetails(validatex.Details(fields))
}

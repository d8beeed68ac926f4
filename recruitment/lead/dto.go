package lead

import (
	"github.com/Abraxas-365/hiretrack/pkg/kernel"
	"github.com/Abraxas-365/hiretrack/pkg/validatex"
)

type CreateLeadRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
	Source   string `json:"source" validate:"omitempty,max=100"`
	Position string `json:"position" validate:"omitempty,max=200"`
	Notes    string `json:"notes" validate:"omitempty,max=5000"`
}

func (r CreateLeadRequest) Validate() error {
	return validationError(r)
}

// UpdateLeadRequest - only supplied fields change
type UpdateLeadRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	Source   *string `json:"source,omitempty" validate:"omitempty,max=100"`
	Position *string `json:"position,omitempty" validate:"omitempty,max=200"`
	Notes    *string `json:"notes,omitempty" validate:"omitempty,max=5000"`
	Status   *string `json:"status,omitempty"`
}

func (r UpdateLeadRequest) Validate() error {
	return validationError(r)
}

func (r UpdateLeadRequest) ToUpdate() Update {
	return Update{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Source:   r.Source,
		Position: r.Position,
		Notes:    r.Notes,
		Status:   r.Status,
	}
}

// Update is the set of optional field changes
type Update struct {
	Name     *string
	Email    *string
	Phone    *string
	Source   *string
	Position *string
	Notes    *string
	Status   *string
}

func (u Update) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil && u.Source == nil &&
		u.Position == nil && u.Notes == nil && u.Status == nil
}

type ConvertLeadRequest struct {
	ResumeID string `json:"resumeId" validate:"required"`
}

func (r ConvertLeadRequest) Validate() error {
	return validationError(r)
}

// ListFilter narrows lead listings; Query matches name, email, phone,
// position and source
type ListFilter struct {
	Status *Status
	Query  string
}

// PaginatedLeadsResponse is a page of leads
type PaginatedLeadsResponse = kernel.Paginated[Lead]

func validationError(s any) error {
	fields := validatex.Struct(s)
	if fields == nil {
		return nil
	}
	return ErrInvalidLeadData().WithDetails(validatex.Details(fields))
}

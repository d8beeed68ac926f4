package user

import (
	"strings"
	"time"

	"github.com/Abraxas-365/hiretrack/pkg/iam/auth"
	"github.com/Abraxas-365/hiretrack/pkg/kernel"
	"github.com/Abraxas-365/hiretrack/pkg/validatex"
)

// ============================================================================
// Request DTOs
// ============================================================================

type SeedAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

func (r *SeedAdminRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
}

func (r SeedAdminRequest) Validate() error {
	return validationError(r)
}

// SignupRequest is shared by public signup and admin registration. Role is
// the external name and defaults to employee. Signup refuses admin.
type SignupRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,max=72"`
	Role       string `json:"role" validate:"omitempty,oneof=admin hr employee"`
	Department string `json:"department" validate:"omitempty,max=200"`
}

func (r *SignupRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
}

func (r SignupRequest) Validate() error {
	return validationError(r)
}

// InternalRole resolves the requested role, staff when none is given
func (r SignupRequest) InternalRole() (auth.Role, error) {
	if r.Role == "" {
		return auth.RoleStaff, nil
	}
	return auth.ParseExternal(r.Role)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r LoginRequest) Validate() error {
	return validationError(r)
}

// ============================================================================
// Response DTOs
// ============================================================================

// UserResponse never carries the password hash; role is the external name
type UserResponse struct {
	ID         kernel.UserID     `json:"id"`
	Name       string            `json:"name"`
	Email      kernel.Email      `json:"email"`
	Role       auth.ExternalRole `json:"role"`
	Department string            `json:"department"`
	CreatedAt  time.Time         `json:"createdAt"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role.ToExternal(),
		Department: u.Department,
		CreatedAt:  u.CreatedAt,
	}
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func validationError(s any) error {
	fields := validatex.Struct(s)
	if fields == nil {
		return nil
	}
	return ErrInvalidUserData().WithDetails(validatex.Details(fields))
}

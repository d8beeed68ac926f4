package user

import (
	"strings"
	"time"

	"github.com/Abraxas-365/hiretrack/pkg/iam/auth"
	"github.com/Abraxas-365/hiretrack/pkg/kernel"
)

// User is a login account
type User struct {
	ID           kernel.UserID  `db:"id" json:"id"`
	Name         string         `db:"name" json:"name"`
	Email        kernel.Email   `db:"email" json:"email"`
	PasswordHash string         `db:"password_hash" json:"-"`
	Role         auth.Role      `db:"role" json:"role"`
	Department   string         `db:"department" json:"department"`
	CreatedBy    *kernel.UserID `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updatedAt"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// NewUser builds an account from already hashed credentials
func NewUser(id kernel.UserID, name string, email kernel.Email, hash string, role auth.Role, department string, createdBy *kernel.UserID, now time.Time) (*User, error) {
	name = strings.TrimSpace(name)
	fields := map[string]any{}
	if name == "" {
		fields["name"] = "required"
	}
	if !email.IsValid() {
		fields["email"] = "email"
	}
	if !role.IsValid() {
		fields["role"] = "oneof=admin hr employee"
	}
	if len(fields) > 0 {
		return nil, ErrInvalidUserData().WithDetail("fields", fields)
	}

	return &User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Department:   strings.TrimSpace(department),
		CreatedBy:    createdBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (u *User) IsAdmin() bool {
	return u.Role == auth.RoleAdmin
}

// Principal is the identity a token is issued for
func (u *User) Principal() auth.Principal {
	return auth.Principal{
		UserID: u.ID,
		Role:   u.Role,
		Email:  u.Email,
		Name:   u.Name,
	}
}

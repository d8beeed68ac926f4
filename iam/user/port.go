package user

import (
	"context"

	"github.com/Abraxas-365/hiretrack/pkg/iam/auth"
	"github.com/Abraxas-365/hiretrack/pkg/kernel"
)

type Repository interface {
	// Create fails with USER.ALREADY_EXISTS when the email is taken
	Create(ctx context.Context, u *User) error

	GetByID(ctx context.Context, id kernel.UserID) (*User, error)

	// GetByEmail expects a normalized email
	GetByEmail(ctx context.Context, email kernel.Email) (*User, error)

	Delete(ctx context.Context, id kernel.UserID) error

	// List retrieves accounts newest first, optionally narrowed to one role
	List(ctx context.Context, role *auth.Role, pagination kernel.PaginationOptions) (kernel.Paginated[User], error)

	// ExistsWithRole reports whether any account holds role
	ExistsWithRole(ctx context.Context, role auth.Role) (bool, error)
}

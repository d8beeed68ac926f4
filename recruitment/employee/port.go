package employee

import (
	"context"

	"github.com/Abraxas-365/hiretrack/pkg/iam/auth"
	"github.com/Abraxas-365/hiretrack/pkg/kernel"
)

type Repository interface {
	// Create fails with EMPLOYEE.ALREADY_EXISTS when the email is taken
	Create(ctx context.Context, e *Employee) error

	// Update writes every column of e; a taken email is EMPLOYEE.ALREADY_EXISTS
	Update(ctx context.Context, e *Employee) error

	GetByID(ctx context.Context, id kernel.EmployeeID) (*Employee, error)

	Delete(ctx context.Context, id kernel.EmployeeID) error

	// List retrieves entries newest first, optionally narrowed to one role
	List(ctx context.Context, role *auth.Role, pagination kernel.PaginationOptions) (kernel.Paginated[Employee], error)
}

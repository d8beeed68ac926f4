package lead

import (
	"context"

	"github.com/Abraxas-365/hiretrack/pkg/kernel"
)

type Repository interface {
	Create(ctx context.Context, l *Lead) error

	// Update writes every mutable column of l
	Update(ctx context.Context, l *Lead) error

	GetByID(ctx context.Context, id kernel.LeadID) (*Lead, error)

	Delete(ctx context.Context, id kernel.LeadID) error

	// List retrieves leads newest first
	List(ctx context.Context, filter ListFilter, pagination kernel.PaginationOptions) (kernel.Paginated[Lead], error)
}

// ResumeChecker confirms a resume exists before a lead links to it
type ResumeChecker interface {
	Exists(ctx context.Context, id kernel.ResumeID) (bool, error)
}

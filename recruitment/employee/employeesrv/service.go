package employeesrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/hiretrack/pkg/errx"
	"github.com/Abraxas-365/hiretrack/pkg/iam/auth"
	"github.com/Abraxas-365/hiretrack/pkg/kernel"
	"github.com/Abraxas-365/hiretrack/pkg/logx"
	"github.com/Abraxas-365/hiretrack/recruitment/employee"
	"github.com/google/uuid"
)

type Service struct {
	repo employee.Repository
	now  func() time.Time
}

func NewService(repo employee.Repository) *Service {
	return &Service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Create(ctx context.Context, req employee.CreateEmployeeRequest, actor auth.Actor) (*employee.EmployeeResponse, error) {
	if err := authorize(actor, auth.RolesEmployeeManage); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	role, err := employee.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	e, err := employee.NewEmployee(
		kernel.NewEmployeeID(uuid.NewString()),
		req.Name,
		kernel.NewEmail(req.Email),
		role,
		req.Department,
		actor.ID,
		s.now(),
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, storageErr(err)
	}

	logx.Infof("User %s added employee %s", actor.ID, e.ID)
	resp := e.ToResponse()
	return &resp, nil
}

// List accepts the external role name as filter
func (s *Service) List(ctx context.Context, role string, pagination kernel.PaginationOptions, actor auth.Actor) (kernel.Paginated[employee.EmployeeResponse], error) {
	if err := authorize(actor, auth.RolesEmployeeList); err != nil {
		return kernel.Paginated[employee.EmployeeResponse]{}, err
	}

	var filter *auth.Role
	if role != "" {
		r, err := employee.ParseRole(role)
		if err != nil {
			return kernel.Paginated[employee.EmployeeResponse]{}, err
		}
		filter = &r
	}

	page, err := s.repo.List(ctx, filter, pagination)
	if err != nil {
		return kernel.Paginated[employee.EmployeeResponse]{}, storageErr(err)
	}
	return kernel.MapPaginated(page, func(e employee.Employee) employee.EmployeeResponse { return e.ToResponse() }), nil
}

func (s *Service) Get(ctx context.Context, id kernel.EmployeeID, actor auth.Actor) (*employee.EmployeeResponse, error) {
	if err := authorize(actor, auth.RolesEmployeeList); err != nil {
		return nil, err
	}

	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	resp := e.ToResponse()
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, id kernel.EmployeeID, req employee.UpdateEmployeeRequest, actor auth.Actor) (*employee.EmployeeResponse, error) {
	if err := authorize(actor, auth.RolesEmployeeManage); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	if err := e.Apply(req.ToUpdate(), s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, storageErr(err)
	}

	resp := e.ToResponse()
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id kernel.EmployeeID, actor auth.Actor) error {
	if err := authorize(actor, auth.RolesEmployeeManage); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return storageErr(err)
	}
	logx.Infof("User %s removed employee %s", actor.ID, id)
	return nil
}

func authorize(actor auth.Actor, allowed []auth.Role) error {
	if auth.HasRole(actor.Role, allowed...) {
		return nil
	}
	return auth.ErrForbidden().WithDetail("role", actor.Role.ToExternal())
}

func storageErr(err error) error {
	if _, ok := errx.As(err); ok {
		return err
	}
	return employee.ErrRegistry.NewWithCause(employee.CodeStorageFailed, err)
}

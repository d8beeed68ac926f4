// Package employeetest provides an in-memory roster store for tests.
package employeetest

import (
	"context"
	"sort"
	"sync"

	"github.com/Abraxas-365/hiretrack/pkg/iam/auth"
	"github.com/Abraxas-365/hiretrack/pkg/kernel"
	"github.com/Abraxas-365/hiretrack/recruitment/employee"
)

type MemoryRepository struct {
	mu        sync.Mutex
	employees map[kernel.EmployeeID]employee.Employee
}

var _ employee.Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{employees: make(map[kernel.EmployeeID]employee.Employee)}
}

func (m *MemoryRepository) Create(ctx context.Context, e *employee.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.emailTaken(e) {
		return employee.ErrEmployeeAlreadyExists().WithDetail("email", e.Email)
	}
	m.employees[e.ID] = *e
	return nil
}

func (m *MemoryRepository) Update(ctx context.Context, e *employee.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.employees[e.ID]; !ok {
		return employee.ErrEmployeeNotFound().WithDetail("employee_id", e.ID.String())
	}
	if m.emailTaken(e) {
		return employee.ErrEmployeeAlreadyExists().WithDetail("email", e.Email)
	}
	m.employees[e.ID] = *e
	return nil
}

func (m *MemoryRepository) GetByID(ctx context.Context, id kernel.EmployeeID) (*employee.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.employees[id]
	if !ok {
		return nil, employee.ErrEmployeeNotFound().WithDetail("employee_id", id.String())
	}
	return &e, nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id kernel.EmployeeID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.employees[id]; !ok {
		return employee.ErrEmployeeNotFound().WithDetail("employee_id", id.String())
	}
	delete(m.employees, id)
	return nil
}

func (m *MemoryRepository) List(ctx context.Context, role *auth.Role, pagination kernel.PaginationOptions) (kernel.Paginated[employee.Employee], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pagination = pagination.Normalize()

	var all []employee.Employee
	for _, e := range m.employees {
		if role != nil && e.Role != *role {
			continue
		}
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	start := min(pagination.Offset(), len(all))
	end := min(start+pagination.PageSize, len(all))
	return kernel.NewPaginated(all[start:end], pagination, int64(len(all))), nil
}

func (m *MemoryRepository) emailTaken(e *employee.Employee) bool {
	for id, existing := range m.employees {
		if id != e.ID && existing.Email == e.Email {
			return true
		}
	}
	return false
}

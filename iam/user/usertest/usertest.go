// Package usertest provides an in-memory account store for tests.
package usertest

import (
	"context"
	"sort"
	"sync"

	"github.com/Abraxas-365/hiretrack/iam/user"
	"github.com/Abraxas-365/hiretrack/pkg/iam/auth"
	"github.com/Abraxas-365/hiretrack/pkg/kernel"
)

type MemoryRepository struct {
	mu    sync.Mutex
	users map[kernel.UserID]user.User
}

var _ user.Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[kernel.UserID]user.User)}
}

func (m *MemoryRepository) Create(ctx context.Context, u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return user.ErrUserAlreadyExists().WithDetail("email", u.Email)
		}
	}
	m.users[u.ID] = *u
	return nil
}

func (m *MemoryRepository) GetByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, user.ErrUserNotFound().WithDetail("user_id", id.String())
	}
	return &u, nil
}

func (m *MemoryRepository) GetByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, user.ErrUserNotFound().WithDetail("email", email.String())
}

func (m *MemoryRepository) Delete(ctx context.Context, id kernel.UserID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return user.ErrUserNotFound().WithDetail("user_id", id.String())
	}
	delete(m.users, id)
	return nil
}

func (m *MemoryRepository) List(ctx context.Context, role *auth.Role, pagination kernel.PaginationOptions) (kernel.Paginated[user.User], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pagination = pagination.Normalize()

	var all []user.User
	for _, u := range m.users {
		if role != nil && u.Role != *role {
			continue
		}
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	start := min(pagination.Offset(), len(all))
	end := min(start+pagination.PageSize, len(all))
	return kernel.NewPaginated(all[start:end], pagination, int64(len(all))), nil
}

func (m *MemoryRepository) ExistsWithRole(ctx context.Context, role auth.Role) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Role == role {
			return true, nil
		}
	}
	return false, nil
}

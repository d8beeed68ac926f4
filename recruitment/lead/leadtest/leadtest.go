// Package leadtest provides an in-memory lead store for tests.
package leadtest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Abraxas-365/hiretrack/pkg/kernel"
	"github.com/Abraxas-365/hiretrack/recruitment/lead"
)

type MemoryRepository struct {
	mu    sync.Mutex
	leads map[kernel.LeadID]lead.Lead
}

var _ lead.Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{leads: make(map[kernel.LeadID]lead.Lead)}
}

func (m *MemoryRepository) Create(ctx context.Context, l *lead.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leads[l.ID] = *l
	return nil
}

func (m *MemoryRepository) Update(ctx context.Context, l *lead.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.leads[l.ID]; !ok {
		return lead.ErrLeadNotFound().WithDetail("lead_id", l.ID.String())
	}
	m.leads[l.ID] = *l
	return nil
}

func (m *MemoryRepository) GetByID(ctx context.Context, id kernel.LeadID) (*lead.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.leads[id]
	if !ok {
		return nil, lead.ErrLeadNotFound().WithDetail("lead_id", id.String())
	}
	return &l, nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id kernel.LeadID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.leads[id]; !ok {
		return lead.ErrLeadNotFound().WithDetail("lead_id", id.String())
	}
	delete(m.leads, id)
	return nil
}

func (m *MemoryRepository) List(ctx context.Context, filter lead.ListFilter, pagination kernel.PaginationOptions) (kernel.Paginated[lead.Lead], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pagination = pagination.Normalize()

	q := strings.ToLower(strings.TrimSpace(filter.Query))
	var all []lead.Lead
	for _, l := range m.leads {
		if filter.Status != nil && l.Status != *filter.Status {
			continue
		}
		if q != "" && !matches(l, q) {
			continue
		}
		all = append(all, l)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	start := min(pagination.Offset(), len(all))
	end := min(start+pagination.PageSize, len(all))
	return kernel.NewPaginated(all[start:end], pagination, int64(len(all))), nil
}

func matches(l lead.Lead, q string) bool {
	for _, field := range []string{l.Name, l.Email.String(), l.Phone.String(), l.Position, l.Source} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// ResumeSet is a ResumeChecker over a fixed set of ids
type ResumeSet map[kernel.ResumeID]bool

func (s ResumeSet) Exists(ctx context.Context, id kernel.ResumeID) (bool, error) {
	return s[id], nil
}

// Package resumetest provides in-memory doubles for resume services and
// handlers under test.
package resumetest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Abraxas-365/hiretrack/pkg/kernel"
	"github.com/Abraxas-365/hiretrack/pkg/mailx"
	"github.com/Abraxas-365/hiretrack/recruitment/resume"
)

// ============================================================================
// Repository
// ============================================================================

// MemoryRepository implements resume.Repository over a map. Stored values
// are copies so callers cannot mutate state without going through Update.
type MemoryRepository struct {
	mu      sync.Mutex
	resumes map[kernel.ResumeID]*resume.Resume
	seq     int64

	// FailWith makes every write return this error when set
	FailWith error
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{resumes: make(map[kernel.ResumeID]*resume.Resume)}
}

func (m *MemoryRepository) Create(ctx context.Context, r *resume.Resume) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWith != nil {
		return m.FailWith
	}
	m.assignSeq(r)
	m.resumes[r.ID] = clone(r)
	return nil
}

func (m *MemoryRepository) Update(ctx context.Context, id kernel.ResumeID, fn resume.MutateFunc) (*resume.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.resumes[id]
	if !ok {
		return nil, resume.ErrResumeNotFound().WithDetail("resume_id", id.String())
	}
	if m.FailWith != nil {
		return nil, m.FailWith
	}

	working := clone(stored)
	if err := fn(working); err != nil {
		return nil, err
	}
	m.assignSeq(working)
	m.resumes[id] = clone(working)
	return working, nil
}

func (m *MemoryRepository) GetByID(ctx context.Context, id kernel.ResumeID) (*resume.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resumes[id]
	if !ok {
		return nil, resume.ErrResumeNotFound().WithDetail("resume_id", id.String())
	}
	return clone(r), nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id kernel.ResumeID) (*resume.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.resumes[id]
	if !ok {
		return nil, resume.ErrResumeNotFound().WithDetail("resume_id", id.String())
	}
	delete(m.resumes, id)
	return r, nil
}

func (m *MemoryRepository) List(ctx context.Context, filter resume.ListFilter, pagination kernel.PaginationOptions) (kernel.Paginated[resume.Resume], error) {
	all, _ := m.ListAll(ctx, filter)
	pagination = pagination.Normalize()

	start := pagination.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + pagination.PageSize
	if end > len(all) {
		end = len(all)
	}
	return kernel.NewPaginated(all[start:end], pagination, int64(len(all))), nil
}

func (m *MemoryRepository) ListAll(ctx context.Context, filter resume.ListFilter) ([]resume.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(filter.Query))
	var out []resume.Resume
	for _, r := range m.resumes {
		if filter.CreatedBy != nil && r.CreatedBy != *filter.CreatedBy {
			continue
		}
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		if q != "" && !matches(r, q) {
			continue
		}
		out = append(out, *clone(r))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryRepository) Exists(ctx context.Context, id kernel.ResumeID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.resumes[id]
	return ok, nil
}

// Len returns the number of stored resumes
func (m *MemoryRepository) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.resumes)
}

func (m *MemoryRepository) assignSeq(r *resume.Resume) {
	for i := range r.History {
		if !r.History[i].IsPersisted() {
			m.seq++
			r.History[i].Seq = m.seq
		}
	}
}

func matches(r *resume.Resume, q string) bool {
	for _, field := range []string{r.CandidateName, r.Email.String(), r.Phone.String(), r.Position} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func clone(r *resume.Resume) *resume.Resume {
	cp := *r
	cp.History = append([]resume.HistoryEntry(nil), r.History...)
	if r.Interview != nil {
		iv := *r.Interview
		cp.Interview = &iv
	}
	if r.ExperienceYears != nil {
		years := *r.ExperienceYears
		cp.ExperienceYears = &years
	}
	return &cp
}

// ============================================================================
// Mail
// ============================================================================

// RecordingSender keeps every message it is asked to send
type RecordingSender struct {
	mu   sync.Mutex
	sent []mailx.Message

	// Err is returned from Send when set; the message is still recorded
	Err error
}

func (s *RecordingSender) Send(ctx context.Context, msg mailx.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return s.Err
}

func (s *RecordingSender) Close() error { return nil }

func (s *RecordingSender) Sent() []mailx.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]mailx.Message(nil), s.sent...)
}

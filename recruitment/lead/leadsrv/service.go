package leadsrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/hiretrack/pkg/errx"
	"github.com/Abraxas-365/hiretrack/pkg/iam/auth"
	"github.com/Abraxas-365/hiretrack/pkg/kernel"
	"github.com/Abraxas-365/hiretrack/pkg/logx"
	"github.com/Abraxas-365/hiretrack/recruitment/lead"
	"github.com/google/uuid"
)

type Service struct {
	repo    lead.Repository
	resumes lead.ResumeChecker
	now     func() time.Time
}

func NewService(repo lead.Repository, resumes lead.ResumeChecker) *Service {
	return &Service{
		repo:    repo,
		resumes: resumes,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Create(ctx context.Context, req lead.CreateLeadRequest, actor auth.Actor) (*lead.Lead, error) {
	if err := authorize(actor, auth.RolesLeadWrite); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	l, err := lead.NewLead(kernel.NewLeadID(uuid.NewString()), req, actor.ID, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, storageErr(err)
	}

	logx.Infof("User %s created lead %s", actor.ID, l.ID)
	return l, nil
}

func (s *Service) List(ctx context.Context, filter lead.ListFilter, pagination kernel.PaginationOptions, actor auth.Actor) (lead.PaginatedLeadsResponse, error) {
	if err := authorize(actor, auth.RolesLeadWrite); err != nil {
		return lead.PaginatedLeadsResponse{}, err
	}

	page, err := s.repo.List(ctx, filter, pagination)
	if err != nil {
		return lead.PaginatedLeadsResponse{}, storageErr(err)
	}
	return page, nil
}

func (s *Service) Get(ctx context.Context, id kernel.LeadID, actor auth.Actor) (*lead.Lead, error) {
	if err := authorize(actor, auth.RolesLeadWrite); err != nil {
		return nil, err
	}

	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	return l, nil
}

func (s *Service) Update(ctx context.Context, id kernel.LeadID, req lead.UpdateLeadRequest, actor auth.Actor) (*lead.Lead, error) {
	if err := authorize(actor, auth.RolesLeadWrite); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	if err := l.Apply(req.ToUpdate(), s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, l); err != nil {
		return nil, storageErr(err)
	}
	return l, nil
}

// Convert links the lead to an existing resume and marks it converted
func (s *Service) Convert(ctx context.Context, id kernel.LeadID, req lead.ConvertLeadRequest, actor auth.Actor) (*lead.Lead, error) {
	if err := authorize(actor, auth.RolesLeadWrite); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resumeID := kernel.NewResumeID(req.ResumeID)
	exists, err := s.resumes.Exists(ctx, resumeID)
	if err != nil {
		return nil, storageErr(err)
	}
	if !exists {
		return nil, lead.ErrResumeNotFound().WithDetail("resume_id", resumeID.String())
	}

	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}
	l.Convert(resumeID, s.now())
	if err := s.repo.Update(ctx, l); err != nil {
		return nil, storageErr(err)
	}

	logx.Infof("User %s converted lead %s to resume %s", actor.ID, l.ID, resumeID)
	return l, nil
}

func (s *Service) Delete(ctx context.Context, id kernel.LeadID, actor auth.Actor) error {
	if err := authorize(actor, auth.RolesLeadDelete); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return storageErr(err)
	}
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
	return lead.ErrRegistry.NewWithCause(lead.CodeStorageFailed, err)
}

package usersrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/hiretrack/iam/user"
	"github.com/Abraxas-365/hiretrack/pkg/errx"
	"github.com/Abraxas-365/hiretrack/pkg/iam/auth"
	"github.com/Abraxas-365/hiretrack/pkg/kernel"
	"github.com/Abraxas-365/hiretrack/pkg/logx"
	"github.com/google/uuid"
)

const defaultAdminName = "Admin"

type Service struct {
	repo   user.Repository
	tokens auth.TokenService
	hasher auth.PasswordHasher
	now    func() time.Time
}

func NewService(repo user.Repository, tokens auth.TokenService, hasher auth.PasswordHasher) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		hasher: hasher,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ============================================================================
// Authentication
// ============================================================================

// SeedAdmin creates the first admin account. It refuses once any admin exists.
func (s *Service) SeedAdmin(ctx context.Context, req user.SeedAdminRequest) (*user.UserResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsWithRole(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, storageErr(err)
	}
	if exists {
		return nil, user.ErrAdminExists()
	}

	name := req.Name
	if name == "" {
		name = defaultAdminName
	}

	u, err := s.create(ctx, name, req.Email, req.Password, auth.RoleAdmin, "", nil)
	if err != nil {
		return nil, err
	}

	logx.Infof("Seeded admin account %s", u.ID)
	resp := u.ToResponse()
	return &resp, nil
}

// Signup creates an account and signs the caller in
func (s *Service) Signup(ctx context.Context, req user.SignupRequest) (*user.AuthResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	role, err := req.InternalRole()
	if err != nil {
		return nil, err
	}
	// admins come from seed-admin or Register only
	if role == auth.RoleAdmin {
		return nil, user.ErrInvalidUserData().
			WithDetail("role", "admin accounts cannot be created through signup")
	}

	u, err := s.create(ctx, req.Name, req.Email, req.Password, role, req.Department, nil)
	if err != nil {
		return nil, err
	}
	return s.issue(u)
}

// Login checks credentials. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req user.LoginRequest) (*user.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByEmail(ctx, kernel.NewEmail(req.Email))
	if err != nil {
		if errx.IsCode(err, user.CodeUserNotFound) {
			return nil, user.ErrInvalidCredentials()
		}
		return nil, storageErr(err)
	}

	if !s.hasher.Verify(u.PasswordHash, req.Password) {
		return nil, user.ErrInvalidCredentials()
	}
	return s.issue(u)
}

// Register is admin-only account creation
func (s *Service) Register(ctx context.Context, req user.SignupRequest, actor auth.Actor) (*user.UserResponse, error) {
	if err := authorize(actor, auth.RolesUserManage); err != nil {
		return nil, err
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	role, err := req.InternalRole()
	if err != nil {
		return nil, err
	}

	createdBy := actor.ID
	u, err := s.create(ctx, req.Name, req.Email, req.Password, role, req.Department, &createdBy)
	if err != nil {
		return nil, err
	}

	logx.Infof("User %s registered account %s as %s", actor.ID, u.ID, role)
	resp := u.ToResponse()
	return &resp, nil
}

// Me returns the caller's account
func (s *Service) Me(ctx context.Context, actor auth.Actor) (*user.UserResponse, error) {
	u, err := s.repo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, storageErr(err)
	}
	resp := u.ToResponse()
	return &resp, nil
}

// ============================================================================
// Administration
// ============================================================================

// List returns accounts, optionally narrowed by external role name
func (s *Service) List(ctx context.Context, role string, pagination kernel.PaginationOptions, actor auth.Actor) (kernel.Paginated[user.UserResponse], error) {
	if err := authorize(actor, auth.RolesUserManage); err != nil {
		return kernel.Paginated[user.UserResponse]{}, err
	}

	var filter *auth.Role
	if role != "" {
		r, err := auth.ParseExternal(role)
		if err != nil {
			return kernel.Paginated[user.UserResponse]{}, err
		}
		filter = &r
	}

	page, err := s.repo.List(ctx, filter, pagination)
	if err != nil {
		return kernel.Paginated[user.UserResponse]{}, storageErr(err)
	}
	return kernel.MapPaginated(page, func(u user.User) user.UserResponse { return u.ToResponse() }), nil
}

func (s *Service) Delete(ctx context.Context, id kernel.UserID, actor auth.Actor) error {
	if err := authorize(actor, auth.RolesUserManage); err != nil {
		return err
	}
	if id == actor.ID {
		return user.ErrCannotDeleteSelf()
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return storageErr(err)
	}
	logx.Infof("User %s deleted account %s", actor.ID, id)
	return nil
}

// ============================================================================
// Helpers
// ============================================================================

func (s *Service) create(ctx context.Context, name, email, password string, role auth.Role, department string, createdBy *kernel.UserID) (*user.User, error) {
	normalized := kernel.NewEmail(email)

	if _, err := s.repo.GetByEmail(ctx, normalized); err == nil {
		return nil, user.ErrUserAlreadyExists().WithDetail("email", normalized)
	} else if !errx.IsCode(err, user.CodeUserNotFound) {
		return nil, storageErr(err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	u, err := user.NewUser(kernel.NewUserID(uuid.NewString()), name, normalized, hash, role, department, createdBy, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, storageErr(err)
	}
	return u, nil
}

func (s *Service) issue(u *user.User) (*user.AuthResponse, error) {
	token, err := s.tokens.GenerateAccessToken(u.Principal())
	if err != nil {
		return nil, err
	}
	return &user.AuthResponse{Token: token, User: u.ToResponse()}, nil
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
	return user.ErrRegistry.NewWithCause(user.CodeStorageFailed, err)
}

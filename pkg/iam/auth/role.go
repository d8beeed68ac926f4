package auth

import (
	"strings"

	"github.com/Abraxas-365/hiretrack/pkg/kernel"
)

// Role is the internal role stored on accounts and tokens
type Role string

const (
	RoleAdmin Role = "admin"
	RoleHR    Role = "hr"
	RoleStaff Role = "staff"
)

// ExternalRole is the name clients see and send
type ExternalRole string

const (
	ExternalAdmin    ExternalRole = "admin"
	ExternalHR       ExternalRole = "hr"
	ExternalEmployee ExternalRole = "employee"
)

var internalToExternal = map[Role]ExternalRole{
	RoleAdmin: ExternalAdmin,
	RoleHR:    ExternalHR,
	RoleStaff: ExternalEmployee,
}

var externalToInternal = map[ExternalRole]Role{
	ExternalAdmin:    RoleAdmin,
	ExternalHR:       RoleHR,
	ExternalEmployee: RoleStaff,
}

// AllRoles lists every internal role
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleHR, RoleStaff}
}

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	_, ok := internalToExternal[r]
	return ok
}

// ToExternal maps the role to its client facing name
func (r Role) ToExternal() ExternalRole {
	return internalToExternal[r]
}

// IsManager reports whether the role may see and act on every record
func (r Role) IsManager() bool {
	return r == RoleAdmin || r == RoleHR
}

func (e ExternalRole) String() string { return string(e) }

// ToInternal maps an external name back to the internal role
func (e ExternalRole) ToInternal() (Role, bool) {
	r, ok := externalToInternal[e]
	return r, ok
}

// ParseExternal accepts only the client facing names
func ParseExternal(s string) (Role, error) {
	r, ok := ExternalRole(strings.ToLower(strings.TrimSpace(s))).ToInternal()
	if !ok {
		return "", ErrInvalidRole().WithDetail("role", s)
	}
	return r, nil
}

// ParseRole accepts either the internal or the external name
func ParseRole(s string) (Role, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	if r := Role(norm); r.IsValid() {
		return r, nil
	}
	return ParseExternal(norm)
}

// Actor is the authenticated identity performing a service operation
type Actor struct {
	ID   kernel.UserID
	Role Role
}

func (a Actor) IsManager() bool { return a.Role.IsManager() }

// Owns reports whether the actor created a record
func (a Actor) Owns(createdBy kernel.UserID) bool {
	return !a.ID.IsEmpty() && a.ID == createdBy
}

package auth

import (
	"strings"

	"github.com/Abraxas-365/hiretrack/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

const localAuthContext = "auth_context"

// AuthContext is what handlers know about the caller
type AuthContext struct {
	UserID *kernel.UserID
	Role   Role
	Email  kernel.Email
	Name   string
}

// Actor returns the identity passed down to services
func (a *AuthContext) Actor() Actor {
	var id kernel.UserID
	if a.UserID != nil {
		id = *a.UserID
	}
	return Actor{ID: id, Role: a.Role}
}

// TokenMiddleware validates bearer tokens
type TokenMiddleware struct {
	tokens TokenService
}

func NewTokenMiddleware(tokens TokenService) *TokenMiddleware {
	return &TokenMiddleware{tokens: tokens}
}

// Authenticate rejects requests without a valid "Bearer <token>" header
func (m *TokenMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return ErrUnauthorized().WithDetail("reason", "missing authorization header")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return ErrUnauthorized().WithDetail("reason", "expected Bearer <token>")
		}

		principal, err := m.tokens.ValidateAccessToken(strings.TrimSpace(parts[1]))
		if err != nil {
			return err
		}

		userID := principal.UserID
		c.Locals(localAuthContext, &AuthContext{
			UserID: &userID,
			Role:   principal.Role,
			Email:  principal.Email,
			Name:   principal.Name,
		})
		return c.Next()
	}
}

// RequireRole must run after Authenticate
func RequireRole(allowed ...Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authCtx, ok := GetAuthContext(c)
		if !ok {
			return ErrUnauthorized()
		}
		if !HasRole(authCtx.Role, allowed...) {
			return ErrForbidden().
				WithDetail("role", authCtx.Role.ToExternal()).
				WithDetail("allowed", externalNames(allowed))
		}
		return c.Next()
	}
}

func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	authCtx, ok := c.Locals(localAuthContext).(*AuthContext)
	return authCtx, ok && authCtx != nil
}

// SetAuthContext is used by tests and internal callers that authenticate out of band
func SetAuthContext(c *fiber.Ctx, authCtx *AuthContext) {
	c.Locals(localAuthContext, authCtx)
}

func externalNames(roles []Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, r.ToExternal().String())
	}
	return out
}

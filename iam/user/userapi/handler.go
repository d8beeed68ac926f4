package userapi

import (
	"github.com/Abraxas-365/hiretrack/iam/user"
	"github.com/Abraxas-365/hiretrack/iam/user/usersrv"
	"github.com/Abraxas-365/hiretrack/pkg/iam/auth"
	"github.com/Abraxas-365/hiretrack/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

type UserHandlers struct {
	service *usersrv.Service
}

func NewUserHandlers(service *usersrv.Service) *UserHandlers {
	return &UserHandlers{service: service}
}

func (h *UserHandlers) RegisterRoutes(app *fiber.App, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/seed-admin", h.SeedAdmin)
	authGroup.Post("/signup", h.Signup)
	authGroup.Post("/login", h.Login)
	authGroup.Post("/register", authMiddleware.Authenticate(), auth.RequireRole(auth.RolesUserManage...), h.Register)
	authGroup.Get("/me", authMiddleware.Authenticate(), h.Me)

	users := api.Group("/users", authMiddleware.Authenticate(), auth.RequireRole(auth.RolesUserManage...))
	users.Get("/", h.ListUsers)
	users.Delete("/:id", h.DeleteUser)
}

// SeedAdmin creates the first admin account
// POST /api/auth/seed-admin
func (h *UserHandlers) SeedAdmin(c *fiber.Ctx) error {
	var req user.SeedAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidUserData().WithDetail("reason", "invalid request body")
	}

	response, err := h.service.SeedAdmin(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// Signup
// POST /api/auth/signup
func (h *UserHandlers) Signup(c *fiber.Ctx) error {
	var req user.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidUserData().WithDetail("reason", "invalid request body")
	}

	response, err := h.service.Signup(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// Login
// POST /api/auth/login
func (h *UserHandlers) Login(c *fiber.Ctx) error {
	var req user.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidUserData().WithDetail("reason", "invalid request body")
	}

	response, err := h.service.Login(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// Register creates an account on behalf of an admin
// POST /api/auth/register
func (h *UserHandlers) Register(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	var req user.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return user.ErrInvalidUserData().WithDetail("reason", "invalid request body")
	}

	response, err := h.service.Register(c.Context(), req, authCtx.Actor())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// Me
// GET /api/auth/me
func (h *UserHandlers) Me(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	response, err := h.service.Me(c.Context(), authCtx.Actor())
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// ListUsers
// GET /api/users?role=employee|hr|admin&page=1&page_size=20
func (h *UserHandlers) ListUsers(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	response, err := h.service.List(c.Context(), c.Query("role"), parsePaginationOptions(c), authCtx.Actor())
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// DeleteUser
// DELETE /api/users/:id
func (h *UserHandlers) DeleteUser(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	if err := h.service.Delete(c.Context(), kernel.NewUserID(c.Params("id")), authCtx.Actor()); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	return kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", kernel.DefaultPageSize),
	}.Normalize()
}

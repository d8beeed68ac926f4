package employeeapi

import (
	"github.com/Abraxas-365/hiretrack/pkg/iam/auth"
	"github.com/Abraxas-365/hiretrack/pkg/kernel"
	"github.com/Abraxas-365/hiretrack/recruitment/employee"
	"github.com/Abraxas-365/hiretrack/recruitment/employee/employeesrv"
	"github.com/gofiber/fiber/v2"
)

type EmployeeHandlers struct {
	service *employeesrv.Service
}

func NewEmployeeHandlers(service *employeesrv.Service) *EmployeeHandlers {
	return &EmployeeHandlers{service: service}
}

func (h *EmployeeHandlers) RegisterRoutes(app *fiber.App, authMiddleware *auth.TokenMiddleware) {
	employees := app.Group("/api/employees", authMiddleware.Authenticate())

	employees.Post("/", auth.RequireRole(auth.RolesEmployeeManage...), h.CreateEmployee)
	employees.Get("/", auth.RequireRole(auth.RolesEmployeeList...), h.ListEmployees)
	employees.Get("/:id", auth.RequireRole(auth.RolesEmployeeList...), h.GetEmployee)
	employees.Patch("/:id", auth.RequireRole(auth.RolesEmployeeManage...), h.UpdateEmployee)
	employees.Delete("/:id", auth.RequireRole(auth.RolesEmployeeManage...), h.DeleteEmployee)
}

// CreateEmployee
// POST /api/employees
func (h *EmployeeHandlers) CreateEmployee(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	var req employee.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return employee.ErrInvalidEmployeeData().WithDetail("reason", "invalid request body")
	}

	response, err := h.service.Create(c.Context(), req, authCtx.Actor())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// ListEmployees
// GET /api/employees?role=employee|hr&page=1&page_size=20
func (h *EmployeeHandlers) ListEmployees(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	pagination := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", kernel.DefaultPageSize),
	}

	response, err := h.service.List(c.Context(), c.Query("role"), pagination.Normalize(), authCtx.Actor())
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// GetEmployee
// GET /api/employees/:id
func (h *EmployeeHandlers) GetEmployee(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	response, err := h.service.Get(c.Context(), employeeID(c), authCtx.Actor())
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// UpdateEmployee
// PATCH /api/employees/:id
func (h *EmployeeHandlers) UpdateEmployee(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	var req employee.UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return employee.ErrInvalidEmployeeData().WithDetail("reason", "invalid request body")
	}

	response, err := h.service.Update(c.Context(), employeeID(c), req, authCtx.Actor())
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// DeleteEmployee
// DELETE /api/employees/:id
func (h *EmployeeHandlers) DeleteEmployee(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	if err := h.service.Delete(c.Context(), employeeID(c), authCtx.Actor()); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

func employeeID(c *fiber.Ctx) kernel.EmployeeID {
	return kernel.NewEmployeeID(c.Params("id"))
}

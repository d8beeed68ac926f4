package leadapi

import (
	"github.com/Abraxas-365/hiretrack/pkg/iam/auth"
	"github.com/Abraxas-365/hiretrack/pkg/kernel"
	"github.com/Abraxas-365/hiretrack/recruitment/lead"
	"github.com/Abraxas-365/hiretrack/recruitment/lead/leadsrv"
	"github.com/gofiber/fiber/v2"
)

type LeadHandlers struct {
	service *leadsrv.Service
}

func NewLeadHandlers(service *leadsrv.Service) *LeadHandlers {
	return &LeadHandlers{service: service}
}

func (h *LeadHandlers) RegisterRoutes(app *fiber.App, authMiddleware *auth.TokenMiddleware) {
	leads := app.Group("/api/leads", authMiddleware.Authenticate())

	leads.Post("/", auth.RequireRole(auth.RolesLeadWrite...), h.CreateLead)
	leads.Get("/", auth.RequireRole(auth.RolesLeadWrite...), h.ListLeads)
	leads.Get("/:id", auth.RequireRole(auth.RolesLeadWrite...), h.GetLead)
	leads.Patch("/:id", auth.RequireRole(auth.RolesLeadWrite...), h.UpdateLead)
	leads.Post("/:id/convert", auth.RequireRole(auth.RolesLeadWrite...), h.ConvertLead)
	leads.Delete("/:id", auth.RequireRole(auth.RolesLeadDelete...), h.DeleteLead)
}

// CreateLead
// POST /api/leads
func (h *LeadHandlers) CreateLead(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	var req lead.CreateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return lead.ErrInvalidLeadData().WithDetail("reason", "invalid request body")
	}

	response, err := h.service.Create(c.Context(), req, authCtx.Actor())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// ListLeads
// GET /api/leads?status=&q=&page=1&page_size=20
func (h *LeadHandlers) ListLeads(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	filter := lead.ListFilter{Query: c.Query("q")}
	if raw := c.Query("status"); raw != "" {
		status, err := lead.ParseStatus(raw)
		if err != nil {
			return err
		}
		filter.Status = &status
	}

	pagination := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", kernel.DefaultPageSize),
	}

	response, err := h.service.List(c.Context(), filter, pagination.Normalize(), authCtx.Actor())
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// GetLead
// GET /api/leads/:id
func (h *LeadHandlers) GetLead(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	response, err := h.service.Get(c.Context(), leadID(c), authCtx.Actor())
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// UpdateLead
// PATCH /api/leads/:id
func (h *LeadHandlers) UpdateLead(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	var req lead.UpdateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return lead.ErrInvalidLeadData().WithDetail("reason", "invalid request body")
	}

	response, err := h.service.Update(c.Context(), leadID(c), req, authCtx.Actor())
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// ConvertLead links the lead to a resume
// POST /api/leads/:id/convert
func (h *LeadHandlers) ConvertLead(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	var req lead.ConvertLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return lead.ErrInvalidLeadData().WithDetail("reason", "invalid request body")
	}

	response, err := h.service.Convert(c.Context(), leadID(c), req, authCtx.Actor())
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// DeleteLead
// DELETE /api/leads/:id
func (h *LeadHandlers) DeleteLead(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	if err := h.service.Delete(c.Context(), leadID(c), authCtx.Actor()); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

func leadID(c *fiber.Ctx) kernel.LeadID {
	return kernel.NewLeadID(c.Params("id"))
}

package resumeapi

import (
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/Abraxas-365/hiretrack/pkg/iam/auth"
	"github.com/Abraxas-365/hiretrack/pkg/kernel"
	"github.com/Abraxas-365/hiretrack/recruitment/resume"
	"github.com/Abraxas-365/hiretrack/recruitment/resume/resumesrv"
	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ResumeHandlers struct {
	service *resumesrv.Service
}

func NewResumeHandlers(service *resumesrv.Service) *ResumeHandlers {
	return &ResumeHandlers{service: service}
}

func (h *ResumeHandlers) RegisterRoutes(app *fiber.App, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api")

	resumes := api.Group("/resumes", authMiddleware.Authenticate())
	resumes.Post("/", auth.RequireRole(auth.RolesResumeCreate...), h.CreateResume)
	resumes.Get("/", auth.RequireRole(auth.RolesResumeList...), h.ListResumes)
	resumes.Get("/mine", h.ListMyResumes)
	resumes.Get("/:id", h.GetResume)
	resumes.Patch("/:id/status", auth.RequireRole(auth.RolesResumeTransit...), h.TransitionStatus)
	resumes.Patch("/:id/feedback", auth.RequireRole(auth.RolesResumeFeedback...), h.SetFeedback)
	resumes.Patch("/:id/hr-owner", auth.RequireRole(auth.RolesResumeHROwner...), h.AssignHROwner)
	resumes.Patch("/:id", auth.RequireRole(auth.RolesResumeEdit...), h.UpdateResume)
	resumes.Delete("/:id", auth.RequireRole(auth.RolesResumeDelete...), h.DeleteResume)
	resumes.Get("/:id/download", auth.RequireRole(auth.RolesResumeDownload...), h.DownloadResume)
	resumes.Post("/:id/schedule-interview", auth.RequireRole(auth.RolesResumeInterview...), h.ScheduleInterview)

	export := api.Group("/export", authMiddleware.Authenticate())
	export.Get("/", auth.RequireRole(auth.RolesResumeExport...), h.ExportAll)
	export.Get("/resumes.xlsx", auth.RequireRole(auth.RolesResumeExport...), h.ExportAll)
	export.Get("/mine", h.ExportMine)
}

// ============================================================================
// Resume CRUD Handlers
// ============================================================================

// CreateResume accepts a multipart upload (file field "resume" or "file")
// or a JSON body without a file
// POST /api/resumes
func (h *ResumeHandlers) CreateResume(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	var req resume.CreateResumeRequest
	var upload *resume.UploadedFile

	if form, err := c.MultipartForm(); err == nil {
		req, err = formRequest(form)
		if err != nil {
			return err
		}

		if fh := formFile(form); fh != nil {
			f, err := fh.Open()
			if err != nil {
				return resume.ErrInvalidResumeData().WithDetail("file", "unreadable upload")
			}
			defer f.Close()
			upload = &resume.UploadedFile{Name: fh.Filename, Size: fh.Size, Content: f}
		}
	} else if err := c.BodyParser(&req); err != nil {
		return resume.ErrInvalidResumeData().WithDetail("reason", "invalid request body")
	}

	response, err := h.service.Create(c.Context(), req, upload, authCtx.Actor())
	return respond(c, fiber.StatusCreated, response, err)
}

func formFile(form *multipart.Form) *multipart.FileHeader {
	for _, field := range []string{"resume", "file"} {
		if files := form.File[field]; len(files) > 0 {
			return files[0]
		}
	}
	return nil
}

func formRequest(form *multipart.Form) (resume.CreateResumeRequest, error) {
	value := func(key string) string {
		if v := form.Value[key]; len(v) > 0 {
			return v[0]
		}
		return ""
	}

	req := resume.CreateResumeRequest{
		CandidateName: value("candidateName"),
		Email:         value("email"),
		Phone:         value("phone"),
		Position:      value("position"),
	}

	if raw := strings.TrimSpace(value("experienceYears")); raw != "" {
		years, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, resume.ErrInvalidResumeData().WithDetail("experienceYears", "must be a number")
		}
		req.ExperienceYears = &years
	}
	return req, nil
}

// ListResumes lists resumes; staff only see their own
// GET /api/resumes?status=&q=&page=1&page_size=20
func (h *ResumeHandlers) ListResumes(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	filter := resume.ListFilter{Query: c.Query("q")}
	if raw := c.Query("status"); raw != "" {
		status, err := resume.ParseStatus(raw)
		if err != nil {
			return err
		}
		filter.Status = &status
	}

	response, err := h.service.List(c.Context(), filter, parsePaginationOptions(c), authCtx.Actor())
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// ListMyResumes lists resumes created by the caller
// GET /api/resumes/mine
func (h *ResumeHandlers) ListMyResumes(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	response, err := h.service.ListMine(c.Context(), parsePaginationOptions(c), authCtx.Actor())
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// GetResume returns a resume with history and interview
// GET /api/resumes/:id
func (h *ResumeHandlers) GetResume(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	response, err := h.service.Get(c.Context(), resumeID(c), authCtx.Actor())
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// UpdateResume corrects descriptive fields
// PATCH /api/resumes/:id
func (h *ResumeHandlers) UpdateResume(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	var req resume.UpdateResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return resume.ErrInvalidResumeData().WithDetail("reason", "invalid request body")
	}

	response, err := h.service.Update(c.Context(), resumeID(c), req, authCtx.Actor())
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// DeleteResume hard deletes a resume and its file
// DELETE /api/resumes/:id
func (h *ResumeHandlers) DeleteResume(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	if err := h.service.Delete(c.Context(), resumeID(c), authCtx.Actor()); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

// ============================================================================
// Pipeline Handlers
// ============================================================================

// TransitionStatus moves a resume to a new status
// PATCH /api/resumes/:id/status
func (h *ResumeHandlers) TransitionStatus(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	var req resume.TransitionStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return resume.ErrInvalidResumeData().WithDetail("reason", "invalid request body")
	}

	response, err := h.service.TransitionStatus(c.Context(), resumeID(c), req, authCtx.Actor())
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// SetFeedback stores feedback in the caller's role slot
// PATCH /api/resumes/:id/feedback
func (h *ResumeHandlers) SetFeedback(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	var req resume.SetFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return resume.ErrInvalidResumeData().WithDetail("reason", "invalid request body")
	}

	response, err := h.service.SetFeedback(c.Context(), resumeID(c), req, authCtx.Actor())
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// AssignHROwner sets the screening HR name
// PATCH /api/resumes/:id/hr-owner
func (h *ResumeHandlers) AssignHROwner(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	var req resume.AssignHROwnerRequest
	if err := c.BodyParser(&req); err != nil {
		return resume.ErrInvalidResumeData().WithDetail("reason", "invalid request body")
	}

	response, err := h.service.AssignHROwner(c.Context(), resumeID(c), req, authCtx.Actor())
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// ScheduleInterview records an interview and emails the candidate
// POST /api/resumes/:id/schedule-interview
func (h *ResumeHandlers) ScheduleInterview(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	var req resume.ScheduleInterviewRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return resume.ErrInvalidResumeData().WithDetail("reason", "invalid request body")
		}
	}

	response, err := h.service.ScheduleInterview(c.Context(), resumeID(c), req, authCtx.Actor())
	return respond(c, fiber.StatusOK, response, err)
}

// ============================================================================
// File Handlers
// ============================================================================

// DownloadResume streams the stored resume file
// GET /api/resumes/:id/download
func (h *ResumeHandlers) DownloadResume(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	result, err := h.service.Download(c.Context(), resumeID(c), authCtx.Actor())
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, result.ContentType)
	c.Set(fiber.HeaderContentDisposition, attachment(result.FileName))
	return c.SendStream(result.Content)
}

// ExportAll downloads every resume as a workbook
// GET /api/export
func (h *ResumeHandlers) ExportAll(c *fiber.Ctx) error {
	return h.export(c, resume.ExportAll)
}

// ExportMine downloads the caller's resumes as a workbook
// GET /api/export/mine
func (h *ResumeHandlers) ExportMine(c *fiber.Ctx) error {
	return h.export(c, resume.ExportMine)
}

func (h *ResumeHandlers) export(c *fiber.Ctx, scope resume.ExportScope) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrUnauthorized()
	}

	result, err := h.service.Export(c.Context(), scope, authCtx.Actor())
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, attachment(result.FileName))
	return c.Send(result.Content)
}

// ============================================================================
// Helpers
// ============================================================================

// respond writes a partial success as 202 with the saved resume and the
// notification error
func respond(c *fiber.Ctx, status int, response *resume.ResumeResponse, err error) error {
	if err != nil {
		if resume.IsNotifyFailure(err) && response != nil {
			return c.Status(fiber.StatusAccepted).JSON(resume.NewPartialSuccess(*response, err))
		}
		return err
	}
	return c.Status(status).JSON(response)
}

func resumeID(c *fiber.Ctx) kernel.ResumeID {
	return kernel.NewResumeID(c.Params("id"))
}

func attachment(name string) string {
	return fmt.Sprintf("attachment; filename=%q", strings.ReplaceAll(name, `"`, ""))
}

func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", kernel.DefaultPageSize)

	return kernel.PaginationOptions{
		Page:     page,
		PageSize: pageSize,
	}.Normalize()
}

package resumeapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Abraxas-365/hiretrack/pkg/errx/errxfiber"
	"github.com/Abraxas-365/hiretrack/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/hiretrack/pkg/iam/auth"
	"github.com/Abraxas-365/hiretrack/pkg/kernel"
	"github.com/Abraxas-365/hiretrack/recruitment/resume"
	"github.com/Abraxas-365/hiretrack/recruitment/resume/resumesrv"
	"github.com/Abraxas-365/hiretrack/recruitment/resume/resumetest"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret"

type testServer struct {
	app    *fiber.App
	tokens *auth.JWTService
	mailer *resumetest.RecordingSender
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	files, err := fsxlocal.NewLocalFileSystem(t.TempDir())
	require.NoError(t, err)

	mailer := &resumetest.RecordingSender{}
	svc := resumesrv.NewService(resumetest.NewMemoryRepository(), files, mailer, nil, resumesrv.Config{Company: "Acme"})
	tokens := auth.NewJWTService(testSecret, time.Hour, "hiretrack")

	app := fiber.New(fiber.Config{ErrorHandler: errxfiber.ErrorHandler})
	NewResumeHandlers(svc).RegisterRoutes(app, auth.NewTokenMiddleware(tokens))

	return &testServer{app: app, tokens: tokens, mailer: mailer}
}

func (s *testServer) token(t *testing.T, id string, role auth.Role) string {
	t.Helper()
	token, err := s.tokens.GenerateAccessToken(auth.Principal{UserID: kernel.UserID(id), Role: role})
	require.NoError(t, err)
	return "Bearer " + token
}

func (s *testServer) do(t *testing.T, req *http.Request, token string) (*http.Response, []byte) {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func jsonRequest(method, target string, body any) *http.Request {
	var r io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func multipartRequest(t *testing.T, fields map[string]string, fileField, fileName string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		part, err := w.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/resumes", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

func (s *testServer) createResume(t *testing.T, token string) resume.ResumeResponse {
	t.Helper()
	req := multipartRequest(t, map[string]string{
		"candidateName":   "Asha Rao",
		"email":           "asha@example.com",
		"experienceYears": "4",
	}, "resume", "asha.pdf", []byte("%PDF-1.4 test"))

	resp, body := s.do(t, req, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	return decode[resume.ResumeResponse](t, body)
}

// ============================================================================
// Tests
// ============================================================================

func TestCreateResume_Multipart(t *testing.T) {
	s := newTestServer(t)
	created := s.createResume(t, s.token(t, "u-staff", auth.RoleStaff))

	assert.Equal(t, "Asha Rao", created.CandidateName)
	assert.Equal(t, 4.0, *created.ExperienceYears)
	assert.True(t, created.HasFile)
	assert.Equal(t, "asha.pdf", created.ResumeFileName)
	assert.Equal(t, kernel.UserID("u-staff"), created.CreatedBy)
}

func TestCreateResume_FileFieldAlias(t *testing.T) {
	s := newTestServer(t)
	req := multipartRequest(t, map[string]string{
		"candidateName": "Ravi",
		"email":         "ravi@example.com",
	}, "file", "ravi.docx", []byte("docx"))

	resp, body := s.do(t, req, s.token(t, "u-hr", auth.RoleHR))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	assert.True(t, decode[resume.ResumeResponse](t, body).HasFile)
}

func TestCreateResume_Validation(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, "u-staff", auth.RoleStaff)

	resp, body := s.do(t, multipartRequest(t, map[string]string{"candidateName": "Asha"}, "", "", nil), token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "RESUME.INVALID_DATA")

	resp, body = s.do(t, multipartRequest(t, map[string]string{
		"candidateName": "Asha", "email": "asha@example.com",
	}, "resume", "asha.exe", []byte("MZ")), token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "RESUME.INVALID_FILE_FORMAT")
}

func TestCreateResume_RequiresAuth(t *testing.T) {
	s := newTestServer(t)
	resp, _ := s.do(t, jsonRequest(http.MethodPost, "/api/resumes", map[string]string{"candidateName": "x"}), "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateResume_NotifyFailureReturns202(t *testing.T) {
	s := newTestServer(t)
	s.mailer.Err = errors.New("smtp down")

	resp, body := s.do(t, jsonRequest(http.MethodPost, "/api/resumes", map[string]string{
		"candidateName": "Asha", "email": "asha@example.com",
	}), s.token(t, "u-staff", auth.RoleStaff))
	require.Equal(t, http.StatusAccepted, resp.StatusCode, string(body))

	partial := decode[resume.PartialSuccessResponse](t, body)
	assert.Equal(t, "Asha", partial.Resume.CandidateName)
	assert.Equal(t, resume.CodeNotifyFailed.String(), partial.Notification.Code)
	assert.Equal(t, false, partial.Notification.Details["retry_scheduled"])
}

func TestTransitionStatus_Routes(t *testing.T) {
	s := newTestServer(t)
	created := s.createResume(t, s.token(t, "u-staff", auth.RoleStaff))
	target := "/api/resumes/" + created.ID.String() + "/status"

	resp, _ := s.do(t, jsonRequest(http.MethodPatch, target, map[string]string{"status": "selected"}), s.token(t, "u-staff", auth.RoleStaff))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := s.do(t, jsonRequest(http.MethodPatch, target, map[string]string{"status": "bogus"}), s.token(t, "u-hr", auth.RoleHR))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "RESUME.INVALID_STATUS")

	resp, body = s.do(t, jsonRequest(http.MethodPatch, target, map[string]string{"status": "selected", "note": "strong fit"}), s.token(t, "u-hr", auth.RoleHR))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	updated := decode[resume.ResumeResponse](t, body)
	assert.Equal(t, resume.StatusSelected, updated.Status)
	assert.Len(t, updated.History, 2)
}

func TestGetResume_StaffIsolation(t *testing.T) {
	s := newTestServer(t)
	created := s.createResume(t, s.token(t, "u-staff", auth.RoleStaff))
	target := "/api/resumes/" + created.ID.String()

	resp, _ := s.do(t, httptest.NewRequest(http.MethodGet, target, nil), s.token(t, "u-other", auth.RoleStaff))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = s.do(t, httptest.NewRequest(http.MethodGet, target, nil), s.token(t, "u-staff", auth.RoleStaff))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.do(t, httptest.NewRequest(http.MethodGet, "/api/resumes/nope", nil), s.token(t, "u-admin", auth.RoleAdmin))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListResumes(t *testing.T) {
	s := newTestServer(t)
	s.createResume(t, s.token(t, "u-staff", auth.RoleStaff))
	s.createResume(t, s.token(t, "u-other", auth.RoleStaff))

	resp, body := s.do(t, httptest.NewRequest(http.MethodGet, "/api/resumes?page=1&page_size=10", nil), s.token(t, "u-staff", auth.RoleStaff))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decode[kernel.Paginated[resume.ResumeResponse]](t, body)
	assert.Equal(t, int64(1), page.Page.Total)

	resp, body = s.do(t, httptest.NewRequest(http.MethodGet, "/api/resumes", nil), s.token(t, "u-hr", auth.RoleHR))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page = decode[kernel.Paginated[resume.ResumeResponse]](t, body)
	assert.Equal(t, int64(2), page.Page.Total)

	resp, body = s.do(t, httptest.NewRequest(http.MethodGet, "/api/resumes/mine", nil), s.token(t, "u-hr", auth.RoleHR))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[kernel.Paginated[resume.ResumeResponse]](t, body).Empty)

	resp, _ = s.do(t, httptest.NewRequest(http.MethodGet, "/api/resumes?status=hired", nil), s.token(t, "u-hr", auth.RoleHR))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFeedbackAndHROwner(t *testing.T) {
	s := newTestServer(t)
	created := s.createResume(t, s.token(t, "u-staff", auth.RoleStaff))
	base := "/api/resumes/" + created.ID.String()

	resp, body := s.do(t, jsonRequest(http.MethodPatch, base+"/feedback", map[string]string{"feedback": "good"}), s.token(t, "u-staff", auth.RoleStaff))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "good", decode[resume.ResumeResponse](t, body).EmployeeFeedback)

	resp, _ = s.do(t, jsonRequest(http.MethodPatch, base+"/feedback", map[string]string{"feedback": ""}), s.token(t, "u-hr", auth.RoleHR))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = s.do(t, jsonRequest(http.MethodPatch, base+"/hr-owner", map[string]string{"screenedBy": "Priya"}), s.token(t, "u-hr", auth.RoleHR))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "Priya", decode[resume.ResumeResponse](t, body).ScreenedBy)
}

func TestScheduleInterview_Route(t *testing.T) {
	s := newTestServer(t)
	created := s.createResume(t, s.token(t, "u-staff", auth.RoleStaff))
	target := "/api/resumes/" + created.ID.String() + "/schedule-interview"

	resp, body := s.do(t, jsonRequest(http.MethodPost, target, map[string]string{"date": "2025-04-01"}), s.token(t, "u-hr", auth.RoleHR))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	got := decode[resume.ResumeResponse](t, body)
	require.NotNil(t, got.Interview)
	assert.Equal(t, "2025-04-01", got.Interview.Date)
	assert.Equal(t, resume.PlaceholderToBeConfirmed, got.Interview.Time)

	sent := s.mailer.Sent()
	assert.Equal(t, "Interview Schedule - Acme", sent[len(sent)-1].Subject)
}

func TestUpdateAndDelete_AdminOnly(t *testing.T) {
	s := newTestServer(t)
	created := s.createResume(t, s.token(t, "u-staff", auth.RoleStaff))
	target := "/api/resumes/" + created.ID.String()

	resp, _ := s.do(t, jsonRequest(http.MethodPatch, target, map[string]string{"position": "SRE"}), s.token(t, "u-hr", auth.RoleHR))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := s.do(t, jsonRequest(http.MethodPatch, target, map[string]string{"position": "SRE"}), s.token(t, "u-admin", auth.RoleAdmin))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "SRE", decode[resume.ResumeResponse](t, body).Position)

	resp, _ = s.do(t, httptest.NewRequest(http.MethodDelete, target, nil), s.token(t, "u-hr", auth.RoleHR))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = s.do(t, httptest.NewRequest(http.MethodDelete, target, nil), s.token(t, "u-admin", auth.RoleAdmin))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = s.do(t, httptest.NewRequest(http.MethodGet, target, nil), s.token(t, "u-admin", auth.RoleAdmin))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDownloadResume(t *testing.T) {
	s := newTestServer(t)
	created := s.createResume(t, s.token(t, "u-staff", auth.RoleStaff))
	target := "/api/resumes/" + created.ID.String() + "/download"

	resp, body := s.do(t, httptest.NewRequest(http.MethodGet, target, nil), s.token(t, "u-hr", auth.RoleHR))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "%PDF-1.4 test", string(body))
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Disposition"), "attachment;"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "asha.pdf")

	resp, _ = s.do(t, httptest.NewRequest(http.MethodGet, target, nil), s.token(t, "u-other", auth.RoleStaff))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestExportRoutes(t *testing.T) {
	s := newTestServer(t)
	s.createResume(t, s.token(t, "u-staff", auth.RoleStaff))

	for _, target := range []string{"/api/export", "/api/export/resumes.xlsx"} {
		resp, body := s.do(t, httptest.NewRequest(http.MethodGet, target, nil), s.token(t, "u-hr", auth.RoleHR))
		require.Equal(t, http.StatusOK, resp.StatusCode, target)
		assert.Equal(t, xlsxContentType, resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "resumes_all.xlsx")
		assert.NotEmpty(t, body)
	}

	resp, _ := s.do(t, httptest.NewRequest(http.MethodGet, "/api/export", nil), s.token(t, "u-staff", auth.RoleStaff))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = s.do(t, httptest.NewRequest(http.MethodGet, "/api/export/mine", nil), s.token(t, "u-staff", auth.RoleStaff))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "resumes_mine.xlsx")
}

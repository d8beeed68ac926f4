package leadapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Abraxas-365/hiretrack/pkg/errx/errxfiber"
	"github.com/Abraxas-365/hiretrack/pkg/iam/auth"
	"github.com/Abraxas-365/hiretrack/pkg/kernel"
	"github.com/Abraxas-365/hiretrack/recruitment/lead"
	"github.com/Abraxas-365/hiretrack/recruitment/lead/leadsrv"
	"github.com/Abraxas-365/hiretrack/recruitment/lead/leadtest"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	app    *fiber.App
	tokens *auth.JWTService
}

func newTestServer() *testServer {
	tokens := auth.NewJWTService("lead-handler-secret", time.Hour, "hiretrack")
	svc := leadsrv.NewService(leadtest.NewMemoryRepository(), leadtest.ResumeSet{"r-1": true})

	app := fiber.New(fiber.Config{ErrorHandler: errxfiber.ErrorHandler})
	NewLeadHandlers(svc).RegisterRoutes(app, auth.NewTokenMiddleware(tokens))
	return &testServer{app: app, tokens: tokens}
}

func (s *testServer) do(t *testing.T, method, target string, role auth.Role, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		token, err := s.tokens.GenerateAccessToken(auth.Principal{UserID: kernel.UserID("u-" + role), Role: role})
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func TestLeadRoutes(t *testing.T) {
	s := newTestServer()

	resp, body := s.do(t, http.MethodPost, "/api/leads", auth.RoleHR, map[string]string{"name": "Asha", "source": "Referral"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var created lead.Lead
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, lead.StatusNew, created.Status)

	resp, _ = s.do(t, http.MethodPost, "/api/leads", auth.RoleStaff, map[string]string{"name": "X"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/api/leads", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	target := "/api/leads/" + created.ID.String()

	resp, body = s.do(t, http.MethodPatch, target, auth.RoleHR, map[string]string{"status": "hired"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "LEAD.INVALID_STATUS")

	resp, body = s.do(t, http.MethodPatch, target, auth.RoleHR, map[string]string{"status": "in_progress"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = s.do(t, http.MethodGet, "/api/leads?status=in_progress&q=ash", auth.RoleAdmin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page lead.PaginatedLeadsResponse
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Len(t, page.Items, 1)

	resp, _ = s.do(t, http.MethodGet, "/api/leads?status=hired", auth.RoleAdmin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, target+"/convert", auth.RoleHR, map[string]string{"resumeId": "r-404"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = s.do(t, http.MethodPost, target+"/convert", auth.RoleHR, map[string]string{"resumeId": "r-1"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var converted lead.Lead
	require.NoError(t, json.Unmarshal(body, &converted))
	assert.Equal(t, lead.StatusConverted, converted.Status)

	resp, _ = s.do(t, http.MethodDelete, target, auth.RoleHR, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = s.do(t, http.MethodDelete, target, auth.RoleAdmin, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, target, auth.RoleAdmin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

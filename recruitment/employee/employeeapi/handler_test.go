package employeeapi

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
	"github.com/Abraxas-365/hiretrack/recruitment/employee"
	"github.com/Abraxas-365/hiretrack/recruitment/employee/employeesrv"
	"github.com/Abraxas-365/hiretrack/recruitment/employee/employeetest"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRoutes(t *testing.T) {
	tokens := auth.NewJWTService("employee-handler-secret", time.Hour, "hiretrack")
	app := fiber.New(fiber.Config{ErrorHandler: errxfiber.ErrorHandler})
	NewEmployeeHandlers(employeesrv.NewService(employeetest.NewMemoryRepository())).
		RegisterRoutes(app, auth.NewTokenMiddleware(tokens))

	do := func(method, target string, role auth.Role, body any) (*http.Response, []byte) {
		var r io.Reader
		if body != nil {
			data, err := json.Marshal(body)
			require.NoError(t, err)
			r = bytes.NewReader(data)
		}
		req := httptest.NewRequest(method, target, r)
		req.Header.Set("Content-Type", "application/json")
		token, err := tokens.GenerateAccessToken(auth.Principal{UserID: kernel.UserID("u-" + role), Role: role})
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		out, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp, out
	}

	payload := map[string]string{"name": "Priya", "email": "priya@example.com", "department": "People", "role": "hr"}

	resp, _ := do(http.MethodPost, "/api/employees", auth.RoleHR, payload)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := do(http.MethodPost, "/api/employees", auth.RoleAdmin, payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var created employee.EmployeeResponse
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, auth.ExternalHR, created.Role)

	resp, body = do(http.MethodPost, "/api/employees", auth.RoleAdmin, payload)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "EMPLOYEE.ALREADY_EXISTS")

	resp, _ = do(http.MethodPost, "/api/employees", auth.RoleAdmin, map[string]string{"name": "X", "email": "x@example.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = do(http.MethodGet, "/api/employees?role=hr", auth.RoleHR, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page kernel.Paginated[employee.EmployeeResponse]
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Len(t, page.Items, 1)

	resp, _ = do(http.MethodGet, "/api/employees", auth.RoleStaff, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	target := "/api/employees/" + created.ID.String()
	resp, body = do(http.MethodPatch, target, auth.RoleAdmin, map[string]string{"department": "Talent"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), "Talent")

	resp, _ = do(http.MethodDelete, target, auth.RoleAdmin, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(http.MethodGet, target, auth.RoleAdmin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

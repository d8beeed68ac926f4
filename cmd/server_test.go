package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Abraxas-365/hiretrack/pkg/config"
	"github.com/Abraxas-365/hiretrack/pkg/iam/auth"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp_GlobalMiddleware(t *testing.T) {
	app := newApp(config.AppConfig{Name: "HireTrack API", ClientOrigin: "https://hr.example.com"})
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	app.Get("/private", func(c *fiber.Ctx) error { return auth.ErrUnauthorized() })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://hr.example.com")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.NotEmpty(t, resp.Header.Get("X-Frame-Options"))
	assert.Equal(t, "https://hr.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "300", resp.Header.Get("X-Ratelimit-Limit"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/private", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}

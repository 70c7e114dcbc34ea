package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corsTestApp() *fiber.App {
	app := fiber.New()
	InitCors(app)
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestInitCorsAllowsConfiguredOrigin(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://catalog.example.com")
	app := corsTestApp()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://catalog.example.com")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "https://catalog.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestInitCorsIgnoresOtherOrigins(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://catalog.example.com")
	app := corsTestApp()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://other.example.com")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

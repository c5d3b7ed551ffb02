package http_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/dental-inventory-api/internal/interfaces/http"
	"github.com/jhoicas/dental-inventory-api/pkg/logger"
)

// ─── RequestLogger ───────────────────────────────────────────────────────────

func readLogLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var line map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &line))
		lines = append(lines, line)
	}
	return lines
}

func TestRequestLogger_NivelSegunStatus(t *testing.T) {
	cases := []struct {
		name   string
		path   string
		status int
		level  string
	}{
		{"2xx como info", "/ok", fiber.StatusOK, "info"},
		{"4xx como warn", "/no-existe", fiber.StatusNotFound, "warn"},
		{"5xx como error", "/falla", fiber.StatusInternalServerError, "error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := logger.New(logger.Config{Env: "production", Level: "debug", Output: &buf})

			app := fiber.New()
			app.Use(apphttp.RequestLogger(log))
			app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
			app.Get("/falla", func(c *fiber.Ctx) error { return errors.New("sin conexión a la base") })

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, tc.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			lines := readLogLines(t, &buf)
			require.Len(t, lines, 1, "una sola línea por petición")
			assert.Equal(t, tc.level, lines[0]["level"])
			assert.Equal(t, float64(tc.status), lines[0]["status"])
			assert.Equal(t, tc.path, lines[0]["path"])
			assert.Equal(t, "http request", lines[0]["message"])
		})
	}
}

func TestRequestLogger_FiltradoPorNivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})

	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, readLogLines(t, &buf))
}

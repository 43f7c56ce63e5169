package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/audit-data/openmeteo-hourly/internal/weather"
	"github.com/audit-data/openmeteo-hourly/internal/weather/providers"
)

type stubProvider struct {
	hourly weather.RawHourly
	err    error
}

func (s *stubProvider) Name() string {
	return "stub"
}

func (s *stubProvider) FetchHourly(ctx context.Context, q weather.Query) (weather.RawHourly, error) {
	return s.hourly, s.err
}

func newTestApp(t *testing.T, p weather.Provider) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})
	RegisterRoutes(app, weather.NewService(p), "Europe/Paris")
	return app
}

func hourlyFixture(t *testing.T) weather.RawHourly {
	t.Helper()
	var h weather.RawHourly
	src := `{"time": ["2026-01-11T00:00","2026-01-11T01:00"], "temperature_2m": [2.1, 2.0]}`
	if err := json.Unmarshal([]byte(src), &h); err != nil {
		t.Fatalf("bad test fixture: %v", err)
	}
	return h
}

// TestHourlyQueryValidation verifies that missing or out-of-range coordinates
// are rejected before any upstream call.
func TestHourlyQueryValidation(t *testing.T) {
	app := newTestApp(t, &stubProvider{hourly: hourlyFixture(t)})

	// Missing lat/lon should return 400.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather/hourly", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	// Out-of-range latitude should also return 400.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/weather/hourly?lat=95&lon=5.71", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestHourlyReturnsCleanedTable(t *testing.T) {
	app := newTestApp(t, &stubProvider{hourly: hourlyFixture(t)})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather/hourly?lat=45.14&lon=5.71", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var payload struct {
		Location weather.Query    `json:"location"`
		Column   string           `json:"column"`
		Points   []map[string]any `json:"points"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}

	if payload.Column != "temp_2m_celsius" {
		t.Fatalf("expected column temp_2m_celsius, got %q", payload.Column)
	}
	if payload.Location.Timezone != "Europe/Paris" {
		t.Fatalf("expected default timezone applied, got %q", payload.Location.Timezone)
	}
	if len(payload.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(payload.Points))
	}
	if payload.Points[0]["temp_2m_celsius"] != 2.1 {
		t.Fatalf("unexpected first point: %v", payload.Points[0])
	}
}

func TestHourlyUpstreamFailureIsBadGateway(t *testing.T) {
	app := newTestApp(t, &stubProvider{err: &providers.StatusError{
		StatusCode: http.StatusInternalServerError,
		Body:       "upstream exploded",
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather/hourly?lat=45.14&lon=5.71", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status %d, got %d", http.StatusBadGateway, resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "500") {
		t.Fatalf("expected upstream status in message, got %s", body)
	}
}

func TestHourlyShapeFailureIsBadGateway(t *testing.T) {
	app := newTestApp(t, &stubProvider{err: &providers.ShapeError{
		RootKeys: []string{"error", "reason"},
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather/hourly?lat=45.14&lon=5.71", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status %d, got %d", http.StatusBadGateway, resp.StatusCode)
	}
}

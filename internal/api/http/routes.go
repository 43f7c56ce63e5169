package httpapi

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sony/gobreaker"

	"github.com/audit-data/openmeteo-hourly/internal/timeseries"
	"github.com/audit-data/openmeteo-hourly/internal/weather"
	"github.com/audit-data/openmeteo-hourly/internal/weather/providers"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app. Outbound fetches
// run behind a circuit breaker so a failing upstream fails fast under load;
// nothing is ever retried.
func RegisterRoutes(app *fiber.App, service *weather.Service, defaultTimezone string) {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	v1 := app.Group("/api/v1")

	v1.Get("/weather/hourly", func(c *fiber.Ctx) error {
		q, err := parseHourlyQuery(c, defaultTimezone)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		result, err := cb.Execute(func() (interface{}, error) {
			return service.HourlyTemperatures(c.UserContext(), q)
		})
		if err != nil {
			return mapFetchError(err)
		}

		table, ok := result.(*timeseries.Table)
		if !ok {
			return fiber.NewError(fiber.StatusInternalServerError, "unexpected result type")
		}

		return c.JSON(fiber.Map{
			"location": q,
			"column":   table.Column(),
			"points":   table,
		})
	})
}

// parseHourlyQuery binds lat/lon/tz query parameters into a weather.Query.
// tz falls back to the configured default timezone.
func parseHourlyQuery(c *fiber.Ctx, defaultTimezone string) (weather.Query, error) {
	var q weather.Query

	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		return q, errors.New("lat and lon query parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return q, fmt.Errorf("invalid lat: %w", err)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return q, fmt.Errorf("invalid lon: %w", err)
	}

	q.Latitude = lat
	q.Longitude = lon
	q.Timezone = c.Query("tz", defaultTimezone)

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}

// mapFetchError translates fetch failures into HTTP statuses: upstream
// status/shape problems are a bad gateway, an open breaker is service
// unavailable, everything else is internal.
func mapFetchError(err error) error {
	var statusErr *providers.StatusError
	var shapeErr *providers.ShapeError

	switch {
	case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
		return fiber.NewError(fiber.StatusServiceUnavailable, "open-meteo temporarily unavailable")
	case errors.As(err, &statusErr) || errors.As(err, &shapeErr):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
	}
}

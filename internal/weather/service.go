package weather

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/audit-data/openmeteo-hourly/internal/timeseries"
)

const (
	timeColumn        = "time"
	temperatureColumn = "temperature_2m"
	outputColumn      = "temp_2m_celsius"
)

var validate = validator.New()

// Service turns raw provider data into a cleaned, time-indexed table.
type Service struct {
	provider Provider
}

// NewService creates a new Service on top of the given provider.
func NewService(provider Provider) *Service {
	return &Service{
		provider: provider,
	}
}

// HourlyTemperatures fetches the hourly temperature series for the query and
// returns it cleaned: unparseable timestamps dropped, duplicate timestamps
// deduplicated (last occurrence wins), rows sorted ascending and indexed by
// timestamp, value column renamed to temp_2m_celsius. Non-numeric temperature
// entries survive as missing values. A single fetch attempt is made; any
// provider failure is returned as-is.
func (s *Service) HourlyTemperatures(ctx context.Context, q Query) (*timeseries.Table, error) {
	if err := validate.Struct(q); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	hourly, err := s.provider.FetchHourly(ctx, q)
	if err != nil {
		return nil, err
	}

	times, ok := hourly[timeColumn]
	if !ok {
		return nil, fmt.Errorf("provider %s returned hourly data without a %s column", s.provider.Name(), timeColumn)
	}

	// The hourly block is a set of parallel arrays; a value column of a
	// different length cannot be aligned by position.
	values := hourly[temperatureColumn]
	if values != nil && len(values) != len(times) {
		return nil, fmt.Errorf("hourly columns misaligned: %s has %d entries, %s has %d",
			timeColumn, len(times), temperatureColumn, len(values))
	}

	points := make([]timeseries.Point, 0, len(times))
	for i, rawTime := range times {
		var p timeseries.Point
		if ts, ok := coerceTime(rawTime); ok {
			p.Time = ts
		}
		if values != nil {
			p.Value = coerceNumeric(values[i])
		}
		points = append(points, p)
	}

	table := timeseries.New(temperatureColumn, points)
	table.DropMissingTime()
	table.DedupKeepLast()
	table.SortByTime()
	table.Rename(outputColumn)

	return table, nil
}

package weather

import (
	"context"
)

// Provider abstracts an hourly-forecast data source (e.g. Open-Meteo). It
// returns the raw hourly columns; the service is responsible for coercion and
// cleaning. A provider performs a single attempt per call: transport failures
// and upstream errors surface directly, never retried.
type Provider interface {
	Name() string
	FetchHourly(ctx context.Context, q Query) (RawHourly, error)
}

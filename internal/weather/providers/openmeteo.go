package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/audit-data/openmeteo-hourly/internal/weather"
)

const defaultTimeout = 10 * time.Second

// OpenMeteoProvider implements the weather.Provider interface for Open-Meteo.
// Each FetchHourly call is a single synchronous GET: no retries, no state
// shared between calls.
type OpenMeteoProvider struct {
	name      string
	baseURL   string
	userAgent string
	client    *http.Client
}

// NewOpenMeteoProvider creates a provider using the given HTTP client. The
// client's timeout bounds the whole attempt; a nil client gets a 10 second
// default.
func NewOpenMeteoProvider(client *http.Client) *OpenMeteoProvider {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	return &OpenMeteoProvider{
		name:      "openmeteo",
		baseURL:   "https://api.open-meteo.com/v1/forecast",
		userAgent: "audit-data-demo/1.0",
		client:    client,
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

// FetchHourly requests the hourly temperature_2m series for the query and
// returns the raw hourly columns. Failures: transport errors (timeout,
// connection refused) propagate untouched; non-2xx statuses become a
// *StatusError carrying a truncated body; a body without a usable
// hourly/time structure becomes a *ShapeError listing the top-level keys
// that were present.
func (p *OpenMeteoProvider) FetchHourly(ctx context.Context, q weather.Query) (weather.RawHourly, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", q.Latitude))
	values.Set("longitude", fmt.Sprintf("%f", q.Longitude))
	values.Set("hourly", "temperature_2m")
	values.Set("timezone", q.Timezone)

	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newStatusError(resp)
	}

	var payload map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode open-meteo response: %w", err)
	}

	rawHourly, ok := payload["hourly"]
	if !ok {
		return nil, newShapeError(payload)
	}

	var hourly weather.RawHourly
	if err := json.Unmarshal(rawHourly, &hourly); err != nil {
		return nil, fmt.Errorf("decode hourly block: %w", err)
	}
	if len(hourly) == 0 {
		return nil, newShapeError(payload)
	}
	if _, ok := hourly["time"]; !ok {
		return nil, newShapeError(payload)
	}

	return hourly, nil
}

package weather

import (
	"encoding/json"
	"fmt"
)

// Query identifies the place and local-time zone for which the hourly series
// is requested. Latitude/longitude are degrees; Timezone is an IANA zone name
// understood by the upstream API.
type Query struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
	Timezone  string  `json:"timezone" validate:"required"`
}

// Key returns a canonical string for logging this query.
func (q Query) Key() string {
	return fmt.Sprintf("%.6f,%.6f@%s", q.Latitude, q.Longitude, q.Timezone)
}

// RawHourly holds the hourly block of a provider response as undecoded column
// arrays keyed by column name, aligned by position. Type coercion happens
// later, per column, so a single bad entry never fails the whole fetch.
type RawHourly map[string][]json.RawMessage

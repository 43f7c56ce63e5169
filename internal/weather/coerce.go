package weather

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Timestamp layouts accepted for the hourly time column. Open-Meteo returns
// minute-precision ISO-8601 local times; the others cover second precision,
// full RFC3339, and bare dates.
var timeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// coerceTime parses a raw JSON entry as a timestamp. Entries that are not
// strings or do not match any known layout report ok=false rather than
// failing the call.
func coerceTime(raw json.RawMessage) (time.Time, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// coerceNumeric parses a raw JSON entry as a float. JSON numbers pass
// through, numeric strings are parsed, and everything else (null included)
// becomes a missing value.
func coerceNumeric(raw json.RawMessage) *float64 {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return &parsed
		}
	}
	return nil
}

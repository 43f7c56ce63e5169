package providers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
)

// maxErrorBody bounds how much of an upstream error payload is kept.
const maxErrorBody = 300

// StatusError reports a non-2xx upstream response. Body holds at most the
// first 300 characters of the raw payload.
type StatusError struct {
	StatusCode int
	Body       string
}

func newStatusError(resp *http.Response) *StatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("open-meteo returned HTTP %d: %s", e.StatusCode, e.Body)
}

// ShapeError reports a well-formed JSON response that lacks the expected
// hourly/time structure. RootKeys lists the top-level keys that were actually
// present, sorted, to aid debugging without echoing the full payload.
type ShapeError struct {
	RootKeys []string
}

func newShapeError(payload map[string]json.RawMessage) *ShapeError {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &ShapeError{RootKeys: keys}
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unexpected response structure: missing hourly/time (root keys: %v)", e.RootKeys)
}

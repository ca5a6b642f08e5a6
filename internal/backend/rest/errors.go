package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"todocli/internal/api"
)

// errorDetail is the service's error body shape.
type errorDetail struct {
	Detail string `json:"detail"`
}

// decodeError turns a non-2xx response into an *api.Error, preferring the
// server-provided detail message over the fallback.
func decodeError(resp *http.Response, fallback string) error {
	detail := fallback
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(body) > 0 {
		var ed errorDetail
		if json.Unmarshal(body, &ed) == nil && ed.Detail != "" {
			detail = ed.Detail
		}
	}
	return &api.Error{Status: resp.StatusCode, Detail: detail}
}

// netError wraps a transport-level failure with a generic message; there
// was no response to take a detail from.
func netError(op string, err error) error {
	return fmt.Errorf("%s: network error: %w", op, err)
}

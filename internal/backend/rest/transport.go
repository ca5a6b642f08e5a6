package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// TokenReader is the read side of the token store. The transport re-reads
// it on every request rather than caching a token at construction, so a
// login or logout in the same process is visible to the next call.
type TokenReader interface {
	Get() (string, bool)
}

// authTransport is the single interception point for outbound calls.
// It attaches the bearer credential when one is stored, stamps a request
// ID, and fires the unauthorized callback on any 401 before the response
// is handed back to the caller.
type authTransport struct {
	base           http.RoundTripper
	tokens         TokenReader
	onUnauthorized func()
	logger         *slog.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	if t.tokens != nil {
		if tok, ok := t.tokens.Get(); ok {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.logger.Debug("api call failed",
			"method", req.Method,
			"path", req.URL.Path,
			"request_id", reqID,
			"err", err)
		return nil, err
	}

	t.logger.Debug("api call",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"request_id", reqID,
		"duration", time.Since(start))

	// Session-wide reaction: any 401 invalidates the session, no matter
	// which operation tripped it. The response still flows back so the
	// caller observes a failed operation.
	if resp.StatusCode == http.StatusUnauthorized && t.onUnauthorized != nil {
		t.onUnauthorized()
	}

	return resp, nil
}

package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrTimeout      = errors.New("upstream_timeout")
	ErrUnavailable  = errors.New("upstream_unavailable")
	ErrNotFound     = errors.New("resource_not_found")
	ErrUnauthorized = errors.New("unauthorized")
)

// StatusError carries a non-2xx upstream response with the best-effort
// message extracted from its body.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream error [%d]: %s", e.StatusCode, e.Message)
}

// decodeError maps a non-2xx response. Credential failures become
// ErrUnauthorized so callers can redirect to login; everything else keeps
// the status and whatever message the body offered.
func decodeError(resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return &StatusError{
		StatusCode: resp.StatusCode,
		Message:    extractMessage(resp),
	}
}

// extractMessage tries the message and error keys of a JSON body, falling
// back to the HTTP status. The upstream sometimes nests validation maps
// under message; those are flattened to their JSON form.
func extractMessage(resp *http.Response) string {
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		for _, key := range []string{"message", "error"} {
			switch v := body[key].(type) {
			case string:
				if v != "" {
					return v
				}
			case map[string]any:
				if raw, err := json.Marshal(v); err == nil {
					return string(raw)
				}
			}
		}
	}
	return fmt.Sprintf("HTTP %d", resp.StatusCode)
}

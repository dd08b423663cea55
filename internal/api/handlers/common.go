package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rumahkos/kos-bff/internal/upstream"
	"github.com/rumahkos/kos-bff/internal/view"
	"github.com/rumahkos/kos-bff/middleware"
)

type apiError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

func sendJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func sendError(w http.ResponseWriter, r *http.Request, code, message string, status int) {
	resp := apiError{}
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.RequestID = middleware.GetRequestID(r.Context())
	if status == http.StatusUnauthorized {
		resp.Redirect = "/login"
	}
	sendJSON(w, status, resp)
}

// handleUpstreamError maps upstream failures onto the error taxonomy: a
// credential failure redirects to login, everything else surfaces the
// best-effort message for the UI alert.
func handleUpstreamError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	switch {
	case errors.Is(err, upstream.ErrUnauthorized):
		sendError(w, r, "unauthorized", "Token tidak valid atau kedaluwarsa. Silakan login ulang.", http.StatusUnauthorized)
	case errors.Is(err, upstream.ErrNotFound):
		sendError(w, r, "resource_not_found", defaultMsg, http.StatusNotFound)
	case errors.Is(err, upstream.ErrTimeout):
		sendError(w, r, "upstream_timeout", defaultMsg, http.StatusGatewayTimeout)
	default:
		var se *upstream.StatusError
		if errors.As(err, &se) {
			sendError(w, r, "upstream_error", se.Message, se.StatusCode)
			return
		}
		sendError(w, r, "internal_error", defaultMsg, http.StatusBadGateway)
	}
}

// sendValidation returns the field→message map that blocks a submit.
func sendValidation(w http.ResponseWriter, r *http.Request, errs map[string]string) {
	sendJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"state":  view.Failure,
		"errors": errs,
	})
}

// respondList runs one fetch through the Resource state machine and writes
// the uniform list envelope. The fetched data replaces whatever the UI held.
func respondList[T any](w http.ResponseWriter, r *http.Request, defaultMsg string, fetch func() (T, error)) {
	res := view.NewResource[T]()
	if err := res.Load(fetch); err != nil {
		handleUpstreamError(w, r, err, defaultMsg)
		return
	}
	sendJSON(w, http.StatusOK, map[string]any{
		"state": res.State(),
		"data":  res.Data(),
	})
}

func urlID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		sendError(w, r, "validation_failed", "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

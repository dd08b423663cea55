package upstream

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rumahkos/kos-bff/internal/logger"
	"github.com/rumahkos/kos-bff/middleware"
)

// ClientConfig holds timeouts for the HTTP wrapper.
type ClientConfig struct {
	// ReadTimeout applies to GET requests.
	ReadTimeout time.Duration
	// WriteTimeout applies to POST, PUT, PATCH, DELETE requests.
	WriteTimeout time.Duration
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// Client is the single HTTP wrapper every upstream call goes through. It
// injects the request ID from context, enforces method-based timeouts, maps
// transport errors to sentinels, and logs each call. Requests are never
// retried.
type Client struct {
	baseClient *http.Client
	config     ClientConfig
}

func NewClient(config ClientConfig) *Client {
	return &Client{
		baseClient: &http.Client{
			// Per-request timeouts come from context, not a global.
			Timeout: 0,
		},
		config: config,
	}
}

func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if reqID := middleware.GetRequestID(ctx); reqID != "" {
		req.Header.Set(middleware.HeaderXRequestID, reqID)
	}

	timeout := c.config.ReadTimeout
	if isWriteMethod(req.Method) {
		timeout = c.config.WriteTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	req = req.WithContext(ctx)

	log := logger.Log.With().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Str("request_id", middleware.GetRequestID(ctx)).
		Logger()

	start := time.Now()

	resp, err := c.baseClient.Do(req)

	duration := time.Since(start)
	if err != nil {
		log.Warn().
			Err(err).
			Dur("duration", duration).
			Msg("upstream_request_failed")
		return nil, c.mapError(err)
	}

	// Buffer the body before cancel fires so large payloads survive past
	// the timeout scope. Callers read from memory.
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		log.Warn().
			Err(err).
			Dur("duration", time.Since(start)).
			Msg("upstream_body_read_failed")
		return nil, c.mapError(err)
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	log.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", duration).
		Msg("upstream_request_completed")

	return resp, nil
}

func (c *Client) mapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	if errors.Is(err, context.Canceled) {
		return ErrTimeout
	}
	return ErrUnavailable
}

func isWriteMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

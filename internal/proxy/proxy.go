package proxy

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/rumahkos/kos-bff/internal/logger"
	"github.com/rumahkos/kos-bff/middleware"
)

// New creates a reverse proxy that rewrites paths and propagates the request
// ID. Used to serve the upstream's kos photos from this origin:
// targetHost "https://host", stripPrefix "/uploads", upstreamPrefix "/uploads".
func New(targetHost, stripPrefix, upstreamPrefix string) (*httputil.ReverseProxy, error) {
	target, err := url.Parse(targetHost)
	if err != nil {
		return nil, err
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	originalDirector := proxy.Director

	proxy.Director = func(req *http.Request) {
		originalDirector(req)

		req.Host = target.Host

		if strings.HasPrefix(req.URL.Path, stripPrefix) {
			req.URL.Path = upstreamPrefix + strings.TrimPrefix(req.URL.Path, stripPrefix)
		}

		reqID := middleware.GetRequestID(req.Context())
		if reqID != "" {
			req.Header.Set(middleware.HeaderXRequestID, reqID)
		}
	}

	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		reqID := middleware.GetRequestID(r.Context())

		logger.Log.Error().
			Err(err).
			Str("target", targetHost).
			Str("request_id", reqID).
			Msg("upstream_proxy_error")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":{"code":"upstream_unavailable","message":"upstream service unreachable","request_id":"` + reqID + `"}}`))
	}

	return proxy, nil
}

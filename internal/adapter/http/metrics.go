package adapthttp

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// httpRequests counts requests by surface (api or static), method and status.
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsroom_http_requests_total",
		Help: "HTTP requests by surface, method and status code",
	}, []string{"surface", "method", "code"})

	// httpDuration tracks request latency by surface.
	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "newsroom_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
	}, []string{"surface"})

	// authChecks counts admin authorization outcomes.
	authChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newsroom_auth_checks_total",
		Help: "Admin authorization checks by result",
	}, []string{"result"})
)

// MetricsHandler exposes the Prometheus registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

func observeRequest(r *http.Request, status int, elapsed time.Duration) {
	surface := "static"
	if strings.HasPrefix(r.URL.Path, "/api/") {
		surface = "api"
	}
	httpRequests.WithLabelValues(surface, methodLabel(r.Method), strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(surface).Observe(elapsed.Seconds())
}

// methodLabel keeps the method label bounded.
func methodLabel(m string) string {
	switch m {
	case http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodOptions:
		return m
	}
	return "OTHER"
}

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taskmanager_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	authAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskmanager_auth_attempts_total",
			Help: "Total auth attempts by event and outcome",
		},
		[]string{"event", "success"},
	)
)

// PrometheusMiddleware records request duration.
func PrometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(ww.Status())
		path := r.URL.Path
		if path == "" {
			path = "/"
		}
		httpRequestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
	})
}

// RecordAuthAttempt records a signup/login/logout outcome.
func RecordAuthAttempt(event string, success bool) {
	authAttempts.WithLabelValues(event, strconv.FormatBool(success)).Inc()
}

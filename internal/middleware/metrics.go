package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/invoza/webapp/internal/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	requestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)
)

// HTTPMetrics collects request counts and latencies for one service.
type HTTPMetrics struct {
	ServiceName string
}

// NewHTTPMetrics registers the collectors and returns the middleware owner.
// Registration is idempotent across instances.
func NewHTTPMetrics(serviceName string) *HTTPMetrics {
	for _, c := range []prometheus.Collector{requestCounter, requestDurationHistogram} {
		if err := prometheus.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				panic(err)
			}
		}
	}
	return &HTTPMetrics{ServiceName: serviceName}
}

// statusRecorder captures the response status for logging and labels.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// Middleware records counters/latency and emits one structured access-log
// line per request.
func (m *HTTPMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start)

		status := strconv.Itoa(rec.status)
		requestCounter.WithLabelValues(m.ServiceName, r.Method, r.URL.Path, status).Inc()
		requestDurationHistogram.WithLabelValues(m.ServiceName, r.Method, r.URL.Path, status).Observe(elapsed.Seconds())

		logger.FromContext(r.Context()).Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("latency", elapsed),
			zap.String("ip", r.RemoteAddr),
		)
	})
}

// Handler exposes the prometheus scrape endpoint.
func (m *HTTPMetrics) Handler() http.Handler {
	return promhttp.Handler()
}

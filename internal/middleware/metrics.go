package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// middlewareMetrics holds Prometheus metrics for the HTTP middleware
// stack.
type middlewareMetrics struct {
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	rateLimitRejected prometheus.Counter
	panicsRecovered   prometheus.Counter
}

var (
	metricsInstance *middlewareMetrics
	metricsOnce     sync.Once
)

// getMiddlewareMetrics returns the singleton middleware metrics
// instance.
func getMiddlewareMetrics() *middlewareMetrics {
	metricsOnce.Do(func() {
		metricsInstance = newMiddlewareMetrics()
	})
	return metricsInstance
}

func newMiddlewareMetrics() *middlewareMetrics {
	return &middlewareMetrics{
		requestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "routemux",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests by method and status",
			},
			[]string{"method", "status"},
		),
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "routemux",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		rateLimitRejected: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "routemux",
				Subsystem: "http",
				Name:      "rate_limit_rejected_total",
				Help:      "Total number of requests rejected by the rate limiter",
			},
		),
		panicsRecovered: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "routemux",
				Subsystem: "http",
				Name:      "panics_recovered_total",
				Help:      "Total number of panics recovered in handlers",
			},
		),
	}
}

// Metrics returns a middleware that records request counts and
// durations.
func Metrics() Middleware {
	m := getMiddlewareMetrics()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{
				ResponseWriter: w,
				status:         http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			m.requestsTotal.WithLabelValues(r.Method, strconv.Itoa(rw.status)).Inc()
			m.requestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
		})
	}
}

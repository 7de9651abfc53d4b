package router

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// routerMetrics contains Prometheus metrics for the dispatch engine.
type routerMetrics struct {
	dispatchTotal    *prometheus.CounterVec
	dispatchDuration prometheus.Histogram
	routesRegistered prometheus.Gauge
}

var (
	routerMetricsInstance *routerMetrics
	routerMetricsOnce     sync.Once
)

// getRouterMetrics returns the singleton router metrics instance.
func getRouterMetrics() *routerMetrics {
	routerMetricsOnce.Do(func() {
		routerMetricsInstance = &routerMetrics{
			dispatchTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "routemux",
					Subsystem: "router",
					Name:      "dispatch_total",
					Help:      "Total number of dispatched requests by outcome",
				},
				[]string{"outcome"},
			),
			dispatchDuration: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "routemux",
					Subsystem: "router",
					Name:      "dispatch_duration_seconds",
					Help:      "Duration of handled dispatches in seconds",
					Buckets:   prometheus.DefBuckets,
				},
			),
			routesRegistered: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "routemux",
					Subsystem: "router",
					Name:      "routes_registered",
					Help:      "Current number of registered routes",
				},
			),
		}
	})
	return routerMetricsInstance
}

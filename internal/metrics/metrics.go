// Package metrics holds the Prometheus collectors for backend traffic and
// polling. Exposed on the optional debug listener.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	apiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_api_requests_total",
			Help: "Total number of backend API requests",
		},
		[]string{"method", "route", "status"},
	)

	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_api_request_duration_seconds",
			Help:    "Duration of backend API requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	pollCycles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_poll_cycles_total",
			Help: "Total number of order view poll cycles",
		},
		[]string{"view", "status"},
	)
)

// ObserveAPIRequest records one backend round trip. The route label is the
// path template, not the concrete URL, to keep cardinality bounded.
func ObserveAPIRequest(method, route string, statusCode int, seconds float64) {
	status := "error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	apiRequestsTotal.WithLabelValues(method, route, status).Inc()
	apiRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// RecordPollCycle records the outcome of one poll of a named order view.
func RecordPollCycle(view string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	pollCycles.WithLabelValues(view, status).Inc()
}

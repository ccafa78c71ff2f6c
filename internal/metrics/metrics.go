package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry records service metrics. A nil *Registry is valid and records
// nothing.
type Registry struct {
	allocations *prometheus.CounterVec
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
}

// New registers the metrics on reg. A nil reg yields a no-op Registry.
func New(reg prometheus.Registerer) *Registry {
	if reg == nil {
		return nil
	}
	allocations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "asset_id_allocations_total",
		Help: "Asset id allocations by outcome.",
	}, []string{"outcome"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by route pattern and status code.",
	}, []string{"method", "route", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	reg.MustRegister(allocations, requests, latency)
	return &Registry{
		allocations: allocations,
		requests:    requests,
		latency:     latency,
	}
}

// ObserveAllocation counts one asset id allocation.
func (r *Registry) ObserveAllocation(outcome string) {
	if r == nil {
		return
	}
	r.allocations.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// ObserveRequest records one served HTTP request.
func (r *Registry) ObserveRequest(method, route string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	route = normalizeLabel(route)
	r.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.latency.WithLabelValues(method, route).Observe(duration.Seconds())
}

func normalizeLabel(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry owns the process metrics on a private prometheus registry so
// tests can construct as many as they like.
type Registry struct {
	reg             *prometheus.Registry
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	FacetFailures   *prometheus.CounterVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rates_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rates_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	facetFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rates_filter_option_facet_failures_total",
		Help: "Filter-option facet fetches that degraded to their default.",
	}, []string{"facet"})

	r.MustRegister(requests, duration, facetFailures)
	return &Registry{
		reg:             r,
		RequestsTotal:   requests,
		RequestDuration: duration,
		FacetFailures:   facetFailures,
	}
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

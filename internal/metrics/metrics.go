// Package metrics exposes Prometheus collectors for listing actions and
// commerce requests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/johnwards/storefront/internal/listing"
)

// Config configures a Recorder.
type Config struct {
	// Namespace is the metrics namespace (default: "storefront").
	Namespace string

	// Buckets are the histogram buckets for durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry receives the collectors. Default: a fresh registry with the Go
	// and process collectors.
	Registry *prometheus.Registry
}

// Option configures a Recorder.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// Recorder implements listing.Observer and the commerce request observer.
type Recorder struct {
	registry *prometheus.Registry

	actionsTotal    *prometheus.CounterVec
	actionDuration  *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New registers the collectors and returns a Recorder.
func New(opts ...Option) *Recorder {
	cfg := Config{
		Namespace: "storefront",
		Buckets:   prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
		cfg.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	factory := promauto.With(cfg.Registry)
	return &Recorder{
		registry: cfg.Registry,

		actionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "listing_actions_total",
			Help:      "Total number of listing actions by listing, action and outcome",
		}, []string{"listing", "action", "status"}),

		actionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "listing_action_duration_seconds",
			Help:      "Listing action duration in seconds",
			Buckets:   cfg.Buckets,
		}, []string{"listing", "action"}),

		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "commerce_requests_total",
			Help:      "Total number of Store API requests by endpoint and status code",
		}, []string{"endpoint", "code"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "commerce_request_duration_seconds",
			Help:      "Store API request duration in seconds",
			Buckets:   cfg.Buckets,
		}, []string{"endpoint"}),
	}
}

// ObserveAction records one listing action.
func (r *Recorder) ObserveAction(listingKey string, action listing.Action, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.actionsTotal.WithLabelValues(listingKey, string(action), status).Inc()
	r.actionDuration.WithLabelValues(listingKey, string(action)).Observe(d.Seconds())
}

// ObserveRequest records one Store API call. A zero code means the request
// never got a response.
func (r *Recorder) ObserveRequest(endpoint string, code int, d time.Duration) {
	label := "error"
	if code > 0 {
		label = strconv.Itoa(code)
	}
	r.requestsTotal.WithLabelValues(endpoint, label).Inc()
	r.requestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// Registry returns the registry the collectors live in.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

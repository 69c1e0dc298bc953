// Package metrics exposes Prometheus metrics for the annealing
// scheduler and the HTTP API, mirroring the teacher's metrics registry
// (a struct of vectors registered once at construction).
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every metric this module exports.
type Registry struct {
	registry prometheus.Registerer

	iterationsTotal prometheus.Counter
	acceptsTotal    prometheus.Counter
	rejectsTotal    prometheus.Counter
	coolingEpochs   prometheus.Counter
	energyGauge     prometheus.Gauge
	temperatureGauge prometheus.Gauge

	httpRequestsTotal   prometheus.CounterVec
	httpRequestDuration prometheus.HistogramVec
}

// NewRegistry registers every metric against the default registerer.
func NewRegistry() *Registry {
	return NewRegistryWith(prometheus.DefaultRegisterer)
}

// NewRegistryWith registers every metric against a custom registerer,
// mainly for tests.
func NewRegistryWith(registerer prometheus.Registerer) *Registry {
	m := &Registry{registry: registerer}

	m.iterationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shiftplan_annealing_iterations_total",
		Help: "Total annealing proposals evaluated.",
	})
	m.registry.MustRegister(m.iterationsTotal)

	m.acceptsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shiftplan_annealing_accepts_total",
		Help: "Total accepted annealing proposals.",
	})
	m.registry.MustRegister(m.acceptsTotal)

	m.rejectsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shiftplan_annealing_rejects_total",
		Help: "Total rejected annealing proposals.",
	})
	m.registry.MustRegister(m.rejectsTotal)

	m.coolingEpochs = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shiftplan_annealing_cooling_epochs_total",
		Help: "Total cooling-epoch boundaries crossed.",
	})
	m.registry.MustRegister(m.coolingEpochs)

	m.energyGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "shiftplan_annealing_energy",
		Help: "Current total energy of the live plan.",
	})
	m.registry.MustRegister(m.energyGauge)

	m.temperatureGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "shiftplan_annealing_temperature",
		Help: "Current annealing temperature.",
	})
	m.registry.MustRegister(m.temperatureGauge)

	m.httpRequestsTotal = *prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shiftplan_http_requests_total",
			Help: "Total HTTP requests by method and path.",
		},
		[]string{"method", "path"},
	)
	m.registry.MustRegister(&m.httpRequestsTotal)

	m.httpRequestDuration = *prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shiftplan_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	m.registry.MustRegister(&m.httpRequestDuration)

	return m
}

// RecordProposal records one evaluated proposal and whether it was
// accepted.
func (m *Registry) RecordProposal(accepted bool) {
	m.iterationsTotal.Inc()
	if accepted {
		m.acceptsTotal.Inc()
	} else {
		m.rejectsTotal.Inc()
	}
}

// RecordCoolingEpoch records one cooling-epoch boundary.
func (m *Registry) RecordCoolingEpoch() {
	m.coolingEpochs.Inc()
}

// SetEnergy updates the current-energy gauge.
func (m *Registry) SetEnergy(e float64) { m.energyGauge.Set(e) }

// SetTemperature updates the current-temperature gauge.
func (m *Registry) SetTemperature(t float64) { m.temperatureGauge.Set(t) }

// RecordHTTPRequest records one HTTP request's method, path and duration.
func (m *Registry) RecordHTTPRequest(method, path string, durationSeconds float64) {
	m.httpRequestsTotal.WithLabelValues(method, path).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(durationSeconds)
}

// Handler returns the Prometheus HTTP handler for a /metrics endpoint,
// serving the registerer this Registry was built against rather than
// always the global default.
func (m *Registry) Handler() http.Handler {
	if gatherer, ok := m.registry.(prometheus.Gatherer); ok {
		return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
	}
	return promhttp.Handler()
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	llmRequestsTotal    *prometheus.CounterVec
	llmRequestDuration  *prometheus.HistogramVec
	parseRecoveries     *prometheus.CounterVec
	fallbackExtractions *prometheus.CounterVec
	collectionTurns     prometheus.Counter
	sessionsActive      prometheus.Gauge
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	// Business metrics
	r.llmRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orgpilot_llm_requests_total",
			Help: "Total number of LLM generation requests",
		},
		[]string{"provider", "status"},
	)
	r.llmRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "orgpilot_llm_request_duration_seconds",
			Help:    "LLM generation request duration in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"provider"},
	)
	r.parseRecoveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orgpilot_parse_recoveries_total",
			Help: "Total number of model responses that needed repair or fallback",
		},
		[]string{"stage"},
	)
	r.fallbackExtractions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orgpilot_fallback_extractions_total",
			Help: "Total number of deterministic fallback extractions",
		},
		[]string{"data_type"},
	)
	r.collectionTurns = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orgpilot_collection_turns_total",
			Help: "Total number of collection conversation turns processed",
		},
	)
	r.sessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "orgpilot_sessions_active",
			Help: "Number of active collection sessions",
		},
	)

	reg.MustRegister(r.llmRequestsTotal)
	reg.MustRegister(r.llmRequestDuration)
	reg.MustRegister(r.parseRecoveries)
	reg.MustRegister(r.fallbackExtractions)
	reg.MustRegister(r.collectionTurns)
	reg.MustRegister(r.sessionsActive)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// LLMRequest records one provider generation call.
func (r *Registry) LLMRequest(provider, status string, duration time.Duration) {
	r.llmRequestsTotal.WithLabelValues(provider, status).Inc()
	r.llmRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// ParseRecovery records a model response that needed repair or fallback.
func (r *Registry) ParseRecovery(stage string) {
	r.parseRecoveries.WithLabelValues(stage).Inc()
}

// FallbackExtraction records a deterministic extraction fallback.
func (r *Registry) FallbackExtraction(dataType string) {
	r.fallbackExtractions.WithLabelValues(dataType).Inc()
}

// CollectionTurn records a processed conversation turn.
func (r *Registry) CollectionTurn() {
	r.collectionTurns.Inc()
}

// SetSessionsActive sets the active session count.
func (r *Registry) SetSessionsActive(count int) {
	r.sessionsActive.Set(float64(count))
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}

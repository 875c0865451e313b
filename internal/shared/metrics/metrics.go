package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess     = "success"
	OutcomeFailure     = "failure"
	OutcomeUnavailable = "unavailable"
)

var (
	registry = prometheus.NewRegistry()

	analysesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "grammar_analyses_total",
		Help: "Grammar analyses by provider and outcome.",
	}, []string{"provider", "outcome"})

	analysisDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "grammar_analysis_duration_ms",
		Help:    "Wall-clock analysis duration in milliseconds.",
		Buckets: []float64{50, 100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000},
	}, []string{"provider"})

	hintRetriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "grammar_languagetool_hint_retries_total",
		Help: "Rule-based checks retried without language hints after a 400.",
	})

	persistFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "grammar_persist_failures_total",
		Help: "Analysis records that could not be stored.",
	})
)

func init() {
	registry.MustRegister(analysesTotal, analysisDuration, hintRetriesTotal, persistFailuresTotal)
}

// ObserveAnalysis records the outcome and duration of one analysis.
func ObserveAnalysis(provider, outcome string, durationMs float64) {
	if durationMs < 0 {
		durationMs = 0
	}
	analysesTotal.WithLabelValues(provider, outcome).Inc()
	analysisDuration.WithLabelValues(provider).Observe(durationMs)
}

// IncHintRetry counts a hint-free retry against the rule-based checker.
func IncHintRetry() {
	hintRetriesTotal.Inc()
}

// IncPersistFailure counts a dropped analysis record.
func IncPersistFailure() {
	persistFailuresTotal.Inc()
}

// Registry exposes the registry for tests and alternate exporters.
func Registry() *prometheus.Registry {
	return registry
}

// Handler serves the registry in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// Package metrics exposes Prometheus instruments for the search tool.
//
// Instruments live on a private registry so that each server (and each
// test) gets its own counters.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pydepdocs"

// Search outcomes.
const (
	OutcomeOK         = "ok"
	OutcomeNoResults  = "no_results"
	OutcomeUserError  = "user_error"
	OutcomeIndexError = "index_error"
	OutcomeFailed     = "failed"
)

// NoFilter is the package label used for unfiltered searches.
const NoFilter = "all"

// Metrics holds the search instruments. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	searchesTotal  *prometheus.CounterVec
	searchDuration *prometheus.HistogramVec
	searchHits     prometheus.Histogram

	http httpInstruments
}

// New creates the instruments and registers them, together with the Go
// runtime and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		searchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "searches_total",
				Help:      "Total number of documentation searches",
			},
			[]string{"package", "outcome"},
		),
		searchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_duration_seconds",
				Help:      "Documentation search duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"package"},
		),
		searchHits: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_hits",
				Help:      "Number of results returned per search",
				Buckets:   []float64{0, 1, 2, 3, 5, 8, 10},
			},
		),
		http: newHTTPInstruments(),
	}

	m.registry.MustRegister(
		m.searchesTotal,
		m.searchDuration,
		m.searchHits,
		m.http.requestDuration,
		m.http.requestsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveSearch records one search. pkg is the package filter, or "" for
// none.
func (m *Metrics) ObserveSearch(pkg, outcome string, elapsed time.Duration, hits int) {
	if m == nil {
		return
	}
	if pkg == "" {
		pkg = NoFilter
	}
	m.searchesTotal.WithLabelValues(pkg, outcome).Inc()
	m.searchDuration.WithLabelValues(pkg).Observe(elapsed.Seconds())
	if outcome == OutcomeOK || outcome == OutcomeNoResults {
		m.searchHits.Observe(float64(hits))
	}
}

// Registry returns the registry the instruments are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

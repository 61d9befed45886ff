package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// geocoding service.
type Metrics struct {
	// Geocoding metrics.
	GeocodeRequests  *prometheus.CounterVec // labels: outcome={cache,shortcut,provider,not_found,error}
	CacheLookups     *prometheus.CounterVec // labels: result={hit,miss}
	CacheEntries     prometheus.Gauge
	ProviderDuration prometheus.Histogram

	// Batch metrics.
	BatchSize     prometheus.Histogram
	BatchFailures prometheus.Counter

	// Enrichment metrics.
	EventsEnriched prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "calendar_map",
			Name:      "geocode_requests_total",
			Help:      "Address resolutions by outcome.",
		}, []string{"outcome"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "calendar_map",
			Name:      "geocode_cache_lookups_total",
			Help:      "Geocode cache lookups by result.",
		}, []string{"result"}),
		CacheEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "calendar_map",
			Name:      "geocode_cache_entries",
			Help:      "Current number of entries in the geocode cache.",
		}),
		ProviderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "calendar_map",
			Name:      "geocode_provider_duration_seconds",
			Help:      "Geocoding provider request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "calendar_map",
			Name:      "geocode_batch_size",
			Help:      "Distinct addresses per batch resolution.",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100},
		}),
		BatchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "calendar_map",
			Name:      "geocode_batch_failures_total",
			Help:      "Addresses that failed to resolve inside a batch.",
		}),
		EventsEnriched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "calendar_map",
			Name:      "events_enriched_total",
			Help:      "Calendar events successfully pinned on the map.",
		}),
	}

	prometheus.MustRegister(
		m.GeocodeRequests,
		m.CacheLookups,
		m.CacheEntries,
		m.ProviderDuration,
		m.BatchSize,
		m.BatchFailures,
		m.EventsEnriched,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		GeocodeRequests:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "calendar_map", Name: "geocode_requests_total"}, []string{"outcome"}),
		CacheLookups:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "calendar_map", Name: "geocode_cache_lookups_total"}, []string{"result"}),
		CacheEntries:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "calendar_map", Name: "geocode_cache_entries"}),
		ProviderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "calendar_map", Name: "geocode_provider_duration_seconds"}),
		BatchSize:        prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "calendar_map", Name: "geocode_batch_size"}),
		BatchFailures:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "calendar_map", Name: "geocode_batch_failures_total"}),
		EventsEnriched:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "calendar_map", Name: "events_enriched_total"}),
	}
}

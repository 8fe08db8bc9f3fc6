// Package observability provides the dashboard's Prometheus metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the dashboard.
type Metrics struct {
	IncidentsLoaded  prometheus.Gauge
	CategoriesLoaded prometheus.Gauge
	LoadDuration     prometheus.Gauge

	// Per-update metrics. FigureUpdates is labelled selection={all,specific,empty}.
	FigureUpdates     *prometheus.CounterVec
	UpdateDuration    prometheus.Histogram
	FilteredIncidents prometheus.Histogram
}

// NewMetrics creates and registers all dashboard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.IncidentsLoaded,
		m.CategoriesLoaded,
		m.LoadDuration,
		m.FigureUpdates,
		m.UpdateDuration,
		m.FilteredIncidents,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		IncidentsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "crime_dashboard",
			Name:      "incidents_loaded",
			Help:      "Number of incidents in the loaded table.",
		}),
		CategoriesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "crime_dashboard",
			Name:      "categories_loaded",
			Help:      "Number of distinct crime types in the loaded table.",
		}),
		LoadDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "crime_dashboard",
			Name:      "load_duration_seconds",
			Help:      "Time taken to load the incident file at startup.",
		}),
		FigureUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crime_dashboard",
			Name:      "figure_updates_total",
			Help:      "Filter recomputations by selection kind.",
		}, []string{"selection"}),
		UpdateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "crime_dashboard",
			Name:      "update_duration_seconds",
			Help:      "Duration of a filter plus both chart builds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		FilteredIncidents: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "crime_dashboard",
			Name:      "filtered_incidents",
			Help:      "Number of incidents passing the selection per update.",
			Buckets:   prometheus.ExponentialBuckets(1, 10, 7),
		}),
	}
}

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the dashboard.
type Metrics struct {
	RecordsLoaded      prometheus.Counter
	RecordsDropped     prometheus.Counter
	InvalidCoordinates prometheus.Gauge
	DatasetReady       prometheus.Gauge

	// Recompute metrics.
	FilterChanges     *prometheus.CounterVec // labels: field={shape,country,season,reset}
	Recomputes        prometheus.Counter
	RecomputeDuration prometheus.Histogram
	FilteredRecords   prometheus.Gauge

	// Snapshot publishing metrics.
	SnapshotsPublished *prometheus.CounterVec // labels: outcome={success,error}
	PublishDuration    prometheus.Histogram
}

// NewMetrics creates and registers all dashboard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates all dashboard metrics and registers them with reg.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RecordsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ufo_dashboard",
			Name:      "records_loaded_total",
			Help:      "Total sightings normalized from the source.",
		}),
		RecordsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ufo_dashboard",
			Name:      "records_dropped_total",
			Help:      "Total source rows dropped for an unparseable date.",
		}),
		InvalidCoordinates: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ufo_dashboard",
			Name:      "invalid_coordinates",
			Help:      "Filtered sightings left off the map for missing or out-of-range coordinates.",
		}),
		DatasetReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ufo_dashboard",
			Name:      "dataset_ready",
			Help:      "1 once the dataset is loaded and the first snapshot computed.",
		}),
		FilterChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ufo_dashboard",
			Name:      "filter_changes_total",
			Help:      "Filter selections by field.",
		}, []string{"field"}),
		Recomputes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ufo_dashboard",
			Name:      "recomputes_total",
			Help:      "Total full snapshot recomputations.",
		}),
		RecomputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ufo_dashboard",
			Name:      "recompute_duration_seconds",
			Help:      "Duration of a full filter-and-aggregate pass.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		FilteredRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ufo_dashboard",
			Name:      "filtered_records",
			Help:      "Sightings passing the current filter selection.",
		}),
		SnapshotsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ufo_dashboard",
			Name:      "snapshots_published_total",
			Help:      "Snapshot publish attempts by outcome.",
		}, []string{"outcome"}),
		PublishDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ufo_dashboard",
			Name:      "publish_duration_seconds",
			Help:      "Snapshot publish duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}

	reg.MustRegister(
		m.RecordsLoaded,
		m.RecordsDropped,
		m.InvalidCoordinates,
		m.DatasetReady,
		m.FilterChanges,
		m.Recomputes,
		m.RecomputeDuration,
		m.FilteredRecords,
		m.SnapshotsPublished,
		m.PublishDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RecordsLoaded:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "ufo_dashboard", Name: "records_loaded_total"}),
		RecordsDropped:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "ufo_dashboard", Name: "records_dropped_total"}),
		InvalidCoordinates: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "ufo_dashboard", Name: "invalid_coordinates"}),
		DatasetReady:       prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "ufo_dashboard", Name: "dataset_ready"}),
		FilterChanges:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "ufo_dashboard", Name: "filter_changes_total"}, []string{"field"}),
		Recomputes:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "ufo_dashboard", Name: "recomputes_total"}),
		RecomputeDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "ufo_dashboard", Name: "recompute_duration_seconds"}),
		FilteredRecords:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "ufo_dashboard", Name: "filtered_records"}),
		SnapshotsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "ufo_dashboard", Name: "snapshots_published_total"}, []string{"outcome"}),
		PublishDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "ufo_dashboard", Name: "publish_duration_seconds"}),
	}
}

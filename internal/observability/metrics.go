package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "market_explorer"

// Metrics holds the Prometheus counters, histograms, and gauges for the explorer.
type Metrics struct {
	// Dataset lifecycle.
	DatasetLoads        *prometheus.CounterVec // labels: trigger={startup,reload}, outcome={success,error}
	DatasetLoadDuration prometheus.Histogram
	DatasetLoaded       prometheus.Gauge
	DatasetCities       prometheus.Gauge

	// Explorer requests.
	SelectionEvents *prometheus.CounterVec // labels: kind
	NoDataViews     prometheus.Counter
	TrendCache      *prometheus.CounterVec // labels: result={hit,miss}

	// Selection event publishing.
	EventsPublished prometheus.Counter
	PublishErrors   prometheus.Counter
}

// NewMetrics creates and registers all explorer metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.DatasetLoads,
		m.DatasetLoadDuration,
		m.DatasetLoaded,
		m.DatasetCities,
		m.SelectionEvents,
		m.NoDataViews,
		m.TrendCache,
		m.EventsPublished,
		m.PublishErrors,
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
		DatasetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_loads_total",
			Help:      "Dataset load attempts by trigger and outcome.",
		}, []string{"trigger", "outcome"}),
		DatasetLoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dataset_load_duration_seconds",
			Help:      "Duration of fetching and decoding the dataset.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		DatasetLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_loaded",
			Help:      "1 when a dataset is being served, 0 otherwise.",
		}),
		DatasetCities: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_cities",
			Help:      "Number of cities in the served dataset.",
		}),
		SelectionEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selection_events_total",
			Help:      "Selector events applied, by kind.",
		}, []string{"kind"}),
		NoDataViews: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "no_data_views_total",
			Help:      "Views whose selection resolved to no market record.",
		}),
		TrendCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trend_cache_total",
			Help:      "Trend series cache lookups by result.",
		}, []string{"result"}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selection_events_published_total",
			Help:      "Selection-change events written to Kafka.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selection_publish_errors_total",
			Help:      "Selection-change events that failed to publish.",
		}),
	}
}

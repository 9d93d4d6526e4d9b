package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for alert lookups.
type Metrics struct {
	Lookups         *prometheus.CounterVec // labels: outcome={success,http_error,transport_error,parse_error,input_error}
	APIDuration     prometheus.Histogram
	AlertsPerFeed   prometheus.Histogram
	BusyRejections  prometheus.Counter
	PublishErrors   prometheus.Counter
	PublisherActive prometheus.Gauge
}

// NewMetrics creates and registers all lookup metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Lookups,
		m.APIDuration,
		m.AlertsPerFeed,
		m.BusyRejections,
		m.PublishErrors,
		m.PublisherActive,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nws_alerts",
			Name:      "lookups_total",
			Help:      "Alert lookups by outcome.",
		}, []string{"outcome"}),
		APIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "nws_alerts",
			Name:      "api_duration_seconds",
			Help:      "NWS alerts API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		AlertsPerFeed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "nws_alerts",
			Name:      "alerts_per_feed",
			Help:      "Number of active alerts returned per successful lookup.",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		}),
		BusyRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nws_alerts",
			Name:      "busy_rejections_total",
			Help:      "Submissions dropped because a lookup was already in flight.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nws_alerts",
			Name:      "publish_errors_total",
			Help:      "Outcomes that could not be delivered to a sink.",
		}),
		PublisherActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nws_alerts",
			Name:      "publisher_enabled",
			Help:      "1 when outcomes are published to Kafka, 0 otherwise.",
		}),
	}
}

package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors of the service.
type Metrics struct {
	DatasetFetches       *prometheus.CounterVec // labels: outcome={success,error}
	DatasetFetchDuration prometheus.Histogram
	DatasetRecords       prometheus.Gauge
	CacheLookups         *prometheus.CounterVec // labels: result={hit,miss}
	Renders              *prometheus.CounterVec // labels: format={svg,html,legend,summary}
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DatasetFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gth",
			Name:      "dataset_fetches_total",
			Help:      "Dataset fetches by outcome.",
		}, []string{"outcome"}),
		DatasetFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gth",
			Name:      "dataset_fetch_duration_seconds",
			Help:      "Duration of a dataset fetch including decoding.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		DatasetRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gth",
			Name:      "dataset_records",
			Help:      "Number of monthly records in the cached dataset.",
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gth",
			Name:      "cache_lookups_total",
			Help:      "Dataset cache lookups by result.",
		}, []string{"result"}),
		Renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gth",
			Name:      "renders_total",
			Help:      "Successful responses by format.",
		}, []string{"format"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.DatasetFetches,
			m.DatasetFetchDuration,
			m.DatasetRecords,
			m.CacheLookups,
			m.Renders,
		)
	}
	return m
}

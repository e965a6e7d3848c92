package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exposes aggregation and briefing metrics via Prometheus.
type Recorder struct {
	queriesTotal  *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
	cacheLookups  *prometheus.CounterVec
	datasetRows   prometheus.Gauge
	briefings     *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		queriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "worldsim_queries_total",
				Help: "Total number of aggregation queries by outcome",
			},
			[]string{"operation", "status"},
		),
		queryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "worldsim_query_duration_seconds",
				Help:    "Duration of aggregation queries in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		cacheLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "worldsim_cache_lookups_total",
				Help: "Result cache lookups by outcome",
			},
			[]string{"name", "outcome"},
		),
		datasetRows: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "worldsim_dataset_rows",
				Help: "Number of rows in the loaded dataset",
			},
		),
		briefings: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "worldsim_briefings_total",
				Help: "Model briefing requests by outcome",
			},
			[]string{"status"},
		),
	}
}

// RecordQuery records a finished aggregation query with its outcome.
func (r *Recorder) RecordQuery(op, status string) {
	r.queriesTotal.WithLabelValues(op, status).Inc()
}

// RecordQueryDuration records aggregation latency in seconds.
func (r *Recorder) RecordQueryDuration(op string, seconds float64) {
	r.queryDuration.WithLabelValues(op).Observe(seconds)
}

// RecordCache records a cache lookup outcome.
func (r *Recorder) RecordCache(name string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	r.cacheLookups.WithLabelValues(name, outcome).Inc()
}

// SetDatasetRows records the loaded dataset size.
func (r *Recorder) SetDatasetRows(n int) {
	r.datasetRows.Set(float64(n))
}

// RecordBriefing records a briefing request outcome.
func (r *Recorder) RecordBriefing(status string) {
	r.briefings.WithLabelValues(status).Inc()
}

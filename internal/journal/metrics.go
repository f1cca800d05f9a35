package journal

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	PushTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "journal_push_total",
			Help: "Total number of transactions pushed to the journal.",
		},
	)

	PushDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "journal_push_duration_seconds",
			Help:    "Duration of journal pushes in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16),
		},
	)

	EraOpenTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "journal_era_open_total",
			Help: "Total number of era files opened and verified successfully.",
		},
	)

	EraCorruptionTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "journal_era_corruption_total",
			Help: "Total number of era files which failed digest verification.",
		},
	)

	DrainedErasTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "journal_drained_eras_total",
			Help: "Total number of eras drained for compaction.",
		},
	)
)

// RegisterMetrics registers all metrics collectors with the given prometheus registerer.
func RegisterMetrics(registerer prometheus.Registerer) error {
	metrics := []prometheus.Collector{
		PushTotal,
		PushDuration,
		EraOpenTotal,
		EraCorruptionTotal,
		DrainedErasTotal,
	}
	for _, metric := range metrics {
		if err := registerer.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

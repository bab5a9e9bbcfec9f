// Package metrics provides Prometheus metrics for the fern service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StepPrepsTotal tracks prep calls by step kind and status
	StepPrepsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fern",
			Subsystem: "steps",
			Name:      "preps_total",
			Help:      "Total number of step prep calls by kind and status",
		},
		[]string{"kind", "status"},
	)

	// StepBakesTotal tracks bake calls by step kind and status
	StepBakesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fern",
			Subsystem: "steps",
			Name:      "bakes_total",
			Help:      "Total number of step bake calls by kind and status",
		},
		[]string{"kind", "status"},
	)

	// StepBakeDuration tracks bake duration in seconds
	StepBakeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fern",
			Subsystem: "steps",
			Name:      "bake_duration_seconds",
			Help:      "Duration of step bakes in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"kind"},
	)

	// StepBakeRows tracks rows passed through bake
	StepBakeRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fern",
			Subsystem: "steps",
			Name:      "baked_rows_total",
			Help:      "Total number of rows baked",
		},
		[]string{"kind"},
	)

	// StepCacheLookups tracks trained step lookups per cache layer
	StepCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fern",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Trained step lookups by cache layer and result",
		},
		[]string{"layer", "result"},
	)

	// KafkaMessagesTotal tracks consumed bake requests
	KafkaMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fern",
			Subsystem: "kafka",
			Name:      "messages_total",
			Help:      "Total number of bake requests consumed by status",
		},
		[]string{"status"},
	)

	// KafkaMessagesInFlight tracks bake requests currently being processed
	KafkaMessagesInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "fern",
			Subsystem: "kafka",
			Name:      "messages_in_flight",
			Help:      "Number of bake requests currently being processed",
		},
	)
)

// Status is the status label for err.
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// ObservePrep records a prep call.
func ObservePrep(kind string, err error) {
	StepPrepsTotal.WithLabelValues(kind, Status(err)).Inc()
}

// ObserveBake records a bake call that started at start.
func ObserveBake(kind string, rows int, start time.Time, err error) {
	StepBakesTotal.WithLabelValues(kind, Status(err)).Inc()
	StepBakeDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err == nil {
		StepBakeRows.WithLabelValues(kind).Add(float64(rows))
	}
}

// ObserveCacheLookup records a hit or miss on a cache layer.
func ObserveCacheLookup(layer string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	StepCacheLookups.WithLabelValues(layer, result).Inc()
}

// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FetchesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_fetches_completed_total",
			Help: "Total number of successful entity fetches",
		},
		[]string{"entity"},
	)

	FetchesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_fetches_failed_total",
			Help: "Total number of failed entity fetches",
		},
		[]string{"entity", "error_code"},
	)

	FetchesDiscarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_fetches_discarded_total",
			Help: "Fetch results dropped because a newer fetch superseded them",
		},
		[]string{"entity"},
	)

	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "store_fetch_duration_seconds",
			Help: "Duration of entity fetches in seconds",
		},
		[]string{"entity"},
	)

	MutationsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_mutations_applied_total",
			Help: "Synchronous slice mutations applied",
		},
		[]string{"entity", "operation"},
	)

	ToastsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notify_toasts_emitted_total",
			Help: "Semantic toast events delivered to the UI stream",
		},
		[]string{"level"},
	)

	ToastsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notify_toasts_dropped_total",
			Help: "Toast events dropped because the consumer fell behind",
		},
		[]string{"level"},
	)
)

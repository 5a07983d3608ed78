// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_resolutions_total",
			Help: "Total number of recommendation resolutions by winning tier",
		},
		[]string{"tier"},
	)

	ResolutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "recommendation_resolution_duration_seconds",
			Help: "Duration of recommendation resolution in seconds",
		},
		[]string{"tier"},
	)

	CatalogRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Total number of catalog API requests by endpoint and outcome",
		},
		[]string{"endpoint", "status"},
	)

	SessionsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "conversation_sessions_started_total",
			Help: "Total number of conversation sessions created",
		},
	)

	AnswersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conversation_answers_total",
			Help: "Total number of accepted answers by step",
		},
		[]string{"step"},
	)

	AnswersRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conversation_answers_rejected_total",
			Help: "Total number of rejected answers by reason",
		},
		[]string{"reason"},
	)
)

// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_requests_total",
			Help: "Total number of chat requests by outcome",
		},
		[]string{"status"},
	)

	ChatResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_resolutions_total",
			Help: "Total number of resolved intents by kind",
		},
		[]string{"intent"},
	)

	ChatExtractionFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_extraction_fallbacks_total",
			Help: "Model-backed extractions downgraded to the heuristic strategy",
		},
	)

	ChatHistoryWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_history_write_failures_total",
			Help: "Conversation log appends that failed and were dropped",
		},
	)

	ChatRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "chat_request_duration_seconds",
			Help: "Duration of chat request resolution in seconds",
		},
		[]string{"intent"},
	)
)

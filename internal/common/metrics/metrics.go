// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuestionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boardpulse_questions_total",
			Help: "Total number of questions processed",
		},
		[]string{"status"},
	)

	BoardFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boardpulse_board_fetches_total",
			Help: "Total number of board fetch attempts",
		},
		[]string{"board", "status"},
	)

	LLMCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boardpulse_llm_calls_total",
			Help: "Total number of language-model calls",
		},
		[]string{"operation", "status"},
	)

	RecordsNormalizedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boardpulse_records_normalized_total",
			Help: "Total number of records retained by normalization",
		},
		[]string{"board"},
	)

	RecordsExcludedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boardpulse_records_excluded_total",
			Help: "Total number of records dropped for unparseable deal values",
		},
		[]string{"board"},
	)

	QuestionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "boardpulse_question_duration_seconds",
			Help: "Duration of one question/answer pipeline run in seconds",
		},
	)
)

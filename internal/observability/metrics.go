// Package observability provides the Prometheus collectors for the extraction
// pipeline and formatted output utilities for verbose CLI mode.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OracleRequests counts query-engine round trips to the model.
	OracleRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_insights_oracle_requests_total",
			Help: "Total number of query-engine requests issued to the model",
		},
		[]string{"status"},
	)

	// StageDuration tracks how long each pipeline stage takes.
	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "resume_insights_stage_duration_seconds",
			Help: "Duration of each extraction pipeline stage in seconds",
		},
		[]string{"stage"},
	)

	// ActiveSessions tracks resume sessions currently held in memory.
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "resume_insights_active_sessions",
			Help: "Number of resume sessions currently held in memory",
		},
	)
)

// ObserveStage records the elapsed time of one pipeline stage. Call it with
// defer at the top of the stage:
//
//	defer observability.ObserveStage("extract_raw_skills", time.Now())
func ObserveStage(stage string, start time.Time) {
	StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// RecordOracleRequest counts one query-engine round trip by outcome.
func RecordOracleRequest(err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	OracleRequests.WithLabelValues(status).Inc()
}

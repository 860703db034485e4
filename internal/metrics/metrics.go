// Package metrics provides the Prometheus registry for the engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hoops_edge"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	ProfilesWrittenTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "correlation_profiles_written_total",
		Help:      "Total number of correlation profiles written",
	})
	PlayersFailedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "players_failed_total",
		Help:      "Total number of players skipped by a run, by stage and reason",
	}, []string{"stage", "reason"})
	GameLogsSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "game_logs_skipped_total",
		Help:      "Total number of game logs skipped for missing context",
	})
	ProjectionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projections_total",
		Help:      "Total number of projections computed",
	})
	ReportRowsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_rows_total",
		Help:      "Total number of report rows produced",
	}, []string{"prop_type"})
	IngestedRowsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingested_rows_total",
		Help:      "Total number of rows ingested, by kind and outcome",
	}, []string{"kind", "outcome"})
	FeedBreakerTripsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "feed_circuit_breaker_trips_total",
		Help:      "Total number of stats feed circuit breaker trips",
	})
)

// Gauge metrics
var (
	ClassifierSamples = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "classifier_training_samples",
		Help:      "Number of labelled samples in the last training run",
	}, []string{"prop_type"})
	ClassifierHoldoutRecall = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "classifier_holdout_recall",
		Help:      "Holdout recall of the last trained classifier",
	}, []string{"prop_type"})
	CacheHitRatio = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "repository_cache_hit_ratio",
		Help:      "Read-through cache hit ratio",
	}, []string{"cache"})
)

// Histogram metrics
var (
	ClassifierTrainingDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "classifier_training_duration_seconds",
		Help:      "Duration of classifier training in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
	})
	FeedRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "feed_request_duration_seconds",
		Help:      "Latency of stats feed requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint", "status"})
	RunDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Duration of ingest, correlation and report runs in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600, 1800},
	}, []string{"job"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(ProfilesWrittenTotal)
		registry.MustRegister(PlayersFailedTotal)
		registry.MustRegister(GameLogsSkippedTotal)
		registry.MustRegister(ProjectionsTotal)
		registry.MustRegister(ReportRowsTotal)
		registry.MustRegister(IngestedRowsTotal)
		registry.MustRegister(FeedBreakerTripsTotal)

		registry.MustRegister(ClassifierSamples)
		registry.MustRegister(ClassifierHoldoutRecall)
		registry.MustRegister(CacheHitRatio)

		registry.MustRegister(ClassifierTrainingDuration)
		registry.MustRegister(FeedRequestDuration)
		registry.MustRegister(RunDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordProfileWritten records a stored correlation profile.
func RecordProfileWritten() {
	ProfilesWrittenTotal.Inc()
}

// RecordPlayerFailed records a player isolated out of a run.
func RecordPlayerFailed(stage, reason string) {
	PlayersFailedTotal.WithLabelValues(stage, reason).Inc()
}

// RecordGameLogsSkipped records game logs left out of a correlation profile.
func RecordGameLogsSkipped(n int) {
	GameLogsSkippedTotal.Add(float64(n))
}

// RecordProjection records a computed projection.
func RecordProjection() {
	ProjectionsTotal.Inc()
}

// RecordReportRows records rows added to a report.
func RecordReportRows(propType string, n int) {
	ReportRowsTotal.WithLabelValues(propType).Add(float64(n))
}

// RecordIngested records ingested rows of a kind, e.g. ("game_log", "stored").
func RecordIngested(kind, outcome string, n int) {
	IngestedRowsTotal.WithLabelValues(kind, outcome).Add(float64(n))
}

// RecordBreakerTrip records the feed circuit breaker opening.
func RecordBreakerTrip() {
	FeedBreakerTripsTotal.Inc()
}

// RecordTraining records a classifier training run.
func RecordTraining(propType string, samples int, recall, durationSeconds float64) {
	ClassifierSamples.WithLabelValues(propType).Set(float64(samples))
	ClassifierHoldoutRecall.WithLabelValues(propType).Set(recall)
	ClassifierTrainingDuration.Observe(durationSeconds)
}

// RecordFeedRequest records a stats feed request.
func RecordFeedRequest(endpoint, status string, durationSeconds float64) {
	FeedRequestDuration.WithLabelValues(endpoint, status).Observe(durationSeconds)
}

// RecordRun records the duration of a scheduled or CLI job.
func RecordRun(job string, durationSeconds float64) {
	RunDuration.WithLabelValues(job).Observe(durationSeconds)
}

// UpdateCacheHitRatio sets the hit ratio of a named cache.
func UpdateCacheHitRatio(cache string, ratio float64) {
	CacheHitRatio.WithLabelValues(cache).Set(ratio)
}

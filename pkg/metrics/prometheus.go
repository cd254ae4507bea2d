// Package metrics provides Prometheus metrics for the goal guessing service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for scored guesses.
const (
	OutcomePerfect = "perfect"
	OutcomePartial = "partial"
	OutcomeZero    = "zero"
)

var (
	pointBuckets = []float64{0, 5, 10, 15, 20, 25, 30, 35, 40}
	bonusBuckets = []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Game metrics
	guessesScored        *prometheus.CounterVec
	roundPoints          prometheus.Histogram
	speedBonus           prometheus.Histogram
	matchDecisions       *prometheus.CounterVec
	guessesDuplicate     prometheus.Counter
	animationValidations *prometheus.CounterVec
	goalsSubmitted       prometheus.Counter
	dailyRollovers       prometheus.Counter

	// Leaderboard metrics
	leaderboardUpdates      prometheus.Counter
	leaderboardPlayers      prometheus.Gauge
	repositoryUpdateLatency prometheus.Histogram
	repositoryQueryLatency  prometheus.Histogram
	snapshotRebuildDuration prometheus.Histogram
	snapshotCount           prometheus.Counter

	// Queue metrics
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueued      prometheus.Counter
	queueDequeued      prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Worker metrics
	workerCount             prometheus.Gauge
	workerActive            prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	errorsByComponent *prometheus.CounterVec

	// System metrics
	systemMemory     prometheus.Gauge
	systemGoroutines prometheus.Gauge
	systemGCPause    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "goalguessr",
		subsystem:        "game",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets,
	})
}

func (m *Manager) initializeMetrics() {
	m.guessesScored = m.counterVec("guesses_scored_total", "Scored guesses by outcome", "outcome")
	m.roundPoints = m.histogram("round_points", "Points awarded per scored round", pointBuckets)
	m.speedBonus = m.histogram("speed_bonus_points", "Speed bonus awarded per scored round", bonusBuckets)
	m.matchDecisions = m.counterVec("match_decisions_total", "Answer match decisions by entity and tier", "entity", "tier")
	m.guessesDuplicate = m.counter("guesses_duplicate_total", "Guesses rejected because the round was already played")
	m.animationValidations = m.counterVec("animation_validations_total", "Animation validations by result", "result")
	m.goalsSubmitted = m.counter("goals_submitted_total", "Goals submitted for review")
	m.dailyRollovers = m.counter("daily_rollovers_total", "Daily games created by the rollover job")

	m.leaderboardUpdates = m.counter("leaderboard_updates_total", "Rounds added to the leaderboard")
	m.leaderboardPlayers = m.gauge("leaderboard_players", "Players on the leaderboard")
	m.repositoryUpdateLatency = m.histogram("repository_update_latency_milliseconds", "Leaderboard update latency", m.histogramBuckets)
	m.repositoryQueryLatency = m.histogram("repository_query_latency_milliseconds", "Leaderboard query latency", m.histogramBuckets)
	m.snapshotRebuildDuration = m.histogram("repository_snapshot_rebuild_milliseconds", "Leaderboard snapshot rebuild time", m.histogramBuckets)
	m.snapshotCount = m.counter("repository_snapshots_total", "Leaderboard snapshots published")

	m.queueSize = m.gauge("queue_size", "Scored rounds waiting in the queue")
	m.queueCapacity = m.gauge("queue_capacity", "Queue capacity")
	m.queueUtilization = m.gauge("queue_utilization_ratio", "Queue fill ratio")
	m.queueEnqueued = m.counter("queue_enqueued_total", "Scored rounds enqueued")
	m.queueDequeued = m.counter("queue_dequeued_total", "Scored rounds dequeued")
	m.queueEnqueueErrors = m.counter("queue_enqueue_errors_total", "Enqueue attempts rejected by backpressure")

	m.workerCount = m.gauge("worker_count", "Workers in the pool")
	m.workerActive = m.gauge("worker_active", "Workers currently applying a round")
	m.workerProcessingLatency = m.histogram("worker_processing_latency_milliseconds", "Time to apply one round", m.histogramBuckets)
	m.workerErrors = m.counter("worker_errors_total", "Rounds the workers failed to apply")

	auto := promauto.With(m.registry)
	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_requests_total", Help: "HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_request_duration_milliseconds", Help: "HTTP request duration in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByComponent = m.counterVec("errors_total", "Errors by component and kind", "component", "kind")

	m.systemMemory = m.gauge("system_memory_bytes", "Heap bytes allocated")
	m.systemGoroutines = m.gauge("system_goroutines", "Live goroutines")
	m.systemGCPause = m.histogram("system_gc_pause_milliseconds", "Average GC pause", m.histogramBuckets)
}

// RecordGuessScored records a scored round.
func RecordGuessScored(points, speedBonus int) {
	outcome := OutcomePartial
	switch {
	case points == 0:
		outcome = OutcomeZero
	case points >= 40:
		outcome = OutcomePerfect
	}
	globalManager.guessesScored.WithLabelValues(outcome).Inc()
	globalManager.roundPoints.Observe(float64(points))
	globalManager.speedBonus.Observe(float64(speedBonus))
}

// RecordMatchDecision records which tier decided a team or player match.
func RecordMatchDecision(entity, tier string) {
	globalManager.matchDecisions.WithLabelValues(entity, tier).Inc()
}

// RecordGuessDuplicate records a guess for an already played round.
func RecordGuessDuplicate() {
	globalManager.guessesDuplicate.Inc()
}

// RecordAnimationValidation records a validation result.
func RecordAnimationValidation(valid bool) {
	result := "invalid"
	if valid {
		result = "valid"
	}
	globalManager.animationValidations.WithLabelValues(result).Inc()
}

// RecordGoalSubmitted records a goal stored for review.
func RecordGoalSubmitted() {
	globalManager.goalsSubmitted.Inc()
}

// RecordDailyRollover records a daily game created by the scheduler.
func RecordDailyRollover() {
	globalManager.dailyRollovers.Inc()
}

// RecordLeaderboardUpdate records a round applied to the leaderboard.
func RecordLeaderboardUpdate() {
	globalManager.leaderboardUpdates.Inc()
}

// UpdateLeaderboardPlayers sets the number of ranked players.
func UpdateLeaderboardPlayers(count int) {
	globalManager.leaderboardPlayers.Set(float64(count))
}

// RecordRepositoryUpdateLatency records leaderboard update latency.
func RecordRepositoryUpdateLatency(latencyMs float64) {
	globalManager.repositoryUpdateLatency.Observe(latencyMs)
}

// RecordRepositoryQueryLatency records leaderboard query latency.
func RecordRepositoryQueryLatency(latencyMs float64) {
	globalManager.repositoryQueryLatency.Observe(latencyMs)
}

// RecordRepositorySnapshotRebuildDuration records a snapshot rebuild.
func RecordRepositorySnapshotRebuildDuration(durationMs float64) {
	globalManager.snapshotRebuildDuration.Observe(durationMs)
	globalManager.snapshotCount.Inc()
}

// UpdateQueueSize sets the queue backlog.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue fill ratio.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue records an enqueued round.
func RecordQueueEnqueue() {
	globalManager.queueEnqueued.Inc()
}

// RecordQueueDequeue records a dequeued round.
func RecordQueueDequeue() {
	globalManager.queueDequeued.Inc()
}

// RecordQueueEnqueueError records a rejected enqueue.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// UpdateWorkerCount sets the pool size.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// UpdateWorkerActiveCount sets the number of busy workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActive.Set(float64(count))
}

// RecordWorkerProcessingLatency records the time to apply one round.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError records a failed round.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error in a component.
func RecordErrorByComponent(component, kind string) {
	globalManager.errorsByComponent.WithLabelValues(component, kind).Inc()
}

// UpdateSystemMemoryUsage sets allocated heap bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemory.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutines.Set(float64(count))
}

// RecordSystemGCPauseTime records the average GC pause.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPause.Observe(pauseMs)
}

// GetRegistry returns the custom registry.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

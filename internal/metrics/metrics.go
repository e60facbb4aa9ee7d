package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_scan_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_scan_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_scan_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Event store metrics
var (
	DBQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_scan_db_queries_total",
			Help: "Total number of event store queries",
		},
		[]string{"operation", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_scan_db_query_duration_seconds",
			Help:    "Event store query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	DBTransactionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_scan_db_transaction_duration_seconds",
			Help:    "Event store transaction duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"outcome"},
	)

	DBRowsAffected = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_scan_db_rows_affected",
			Help:    "Rows affected by event store write operations",
			Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000},
		},
		[]string{"operation"},
	)

	DBConnectionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_scan_db_connections_open",
			Help: "Number of open event store connections",
		},
	)
)

// Scan cycle metrics
var (
	ScanCyclesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_scan_cycles_total",
			Help: "Total number of scan cycles started",
		},
	)

	ScanCycleRunning = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_scan_cycle_running",
			Help: "Whether a scan cycle is currently running (1 = running, 0 = idle)",
		},
	)

	ScanLastCycleTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_scan_last_cycle_timestamp",
			Help: "Timestamp of the last completed scan cycle",
		},
	)

	ScanLastCycleDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_scan_last_cycle_duration_seconds",
			Help: "Duration of the last completed scan cycle in seconds",
		},
	)

	ScanFilesSeen = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_scan_files_seen_total",
			Help: "Total number of media files returned by directory scans",
		},
	)

	ScanFilesSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_scan_files_skipped_total",
			Help: "Total number of files skipped due to unreadable metadata",
		},
	)

	ScanEventsInserted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_scan_events_inserted_total",
			Help: "Total number of new media events committed to the event store",
		},
	)

	ScanLocationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_scan_location_errors_total",
			Help: "Total number of per-location scan cycle failures",
		},
		[]string{"location"},
	)

	ScanFullReloadsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_scan_full_reloads_total",
			Help: "Total number of cycles that ignored the timing cache",
		},
	)
)

// Signing metrics
var (
	SignaturesIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_scan_signatures_issued_total",
			Help: "Total number of path signatures issued",
		},
	)

	SignatureVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_scan_signature_verifications_total",
			Help: "Total number of path signature verifications",
		},
		[]string{"result"},
	)
)

// Auth metrics
var (
	AuthAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_scan_auth_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"},
	)
)

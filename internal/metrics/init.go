package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	// --- Event store operations ---
	for _, op := range []string{"initialize_schema", "find_existing_paths", "insert_events",
		"events_between", "count_events", "create_user", "validate_password",
		"create_session", "validate_session", "clean_expired_sessions", "update_password"} {
		DBQueryTotal.WithLabelValues(op, "success")
		DBQueryTotal.WithLabelValues(op, "error")
		DBQueryDuration.WithLabelValues(op)
	}

	for _, outcome := range []string{"commit", "rollback"} {
		DBTransactionDuration.WithLabelValues(outcome)
	}

	for _, op := range []string{"insert_events"} {
		DBRowsAffected.WithLabelValues(op)
	}

	// --- Signature verification outcomes ---
	for _, result := range []string{"success", "failure"} {
		SignatureVerificationsTotal.WithLabelValues(result)
		AuthAttemptsTotal.WithLabelValues(result)
	}
}

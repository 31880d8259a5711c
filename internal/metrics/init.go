package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, op := range []string{"get", "set", "delete"} {
		StoreOperationDuration.WithLabelValues(op)
		for _, status := range []string{"success", "error", "not_found"} {
			StoreOperationsTotal.WithLabelValues(op, status)
		}
	}

	for _, op := range []string{"create", "remove", "select", "edit", "add_track", "remove_track"} {
		PlaylistMutationsTotal.WithLabelValues(op)
	}

	for _, result := range []string{"valid", "invalid", "error"} {
		ValidationsTotal.WithLabelValues(result)
	}

	for _, result := range []string{"loaded", "failed"} {
		EmbedLoadsTotal.WithLabelValues(result)
	}

	for _, dir := range []string{"in", "out"} {
		LiveMessagesTotal.WithLabelValues(dir)
	}
}

package handler

import (
	"fmt"
	"net/http"

	"github.com/linkstash/linkstash/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "linkstash_users_registered_total %d\n", snap.UsersRegistered)
	writeMetric(w, "linkstash_logins_total{status=\"success\"} %d\n", snap.LoginsSucceeded)
	writeMetric(w, "linkstash_logins_total{status=\"failed\"} %d\n", snap.LoginsFailed)

	writeMetric(w, "linkstash_links_created_total %d\n", snap.LinksCreated)
	writeMetric(w, "linkstash_links_updated_total %d\n", snap.LinksUpdated)
	writeMetric(w, "linkstash_links_deleted_total %d\n", snap.LinksDeleted)

	writeMetric(w, "linkstash_analysis_requests_total %d\n", snap.AnalysisCalls)
	writeMetric(w, "linkstash_analysis_failures_total %d\n", snap.AnalysisFailed)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

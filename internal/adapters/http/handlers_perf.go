package web

import (
	"net/http"
	"strconv"
	"time"
)

// handlePerf handles GET /api/perf, the admin performance snapshot.
// ?hours=N bounds the window (default 1, max 24).
func handlePerf(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	hours := 1
	if raw := r.URL.Query().Get("hours"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 24 {
			http.Error(w, "hours must be 1..24", http.StatusBadRequest)
			return
		}
		hours = n
	}

	since := timeNow().Add(-time.Duration(hours) * time.Hour)
	snap := perfCollector.Snapshot(since, 10)

	writeJSON(w, http.StatusOK, map[string]any{
		"total_requests":  snap.TotalRequests,
		"error_requests":  snap.ErrorRequests,
		"request_p50_ms":  snap.RequestP50Ms,
		"request_p95_ms":  snap.RequestP95Ms,
		"request_p99_ms":  snap.RequestP99Ms,
		"slowest_paths":   snap.SlowestPaths,
		"slowest_queries": snap.SlowestQueries,
		"total_recorded":  perfCollector.TotalRecorded(),
	})
}

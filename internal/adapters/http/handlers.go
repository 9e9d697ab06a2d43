package web

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"bizkit/internal/adapters/http/middleware"
	"bizkit/internal/application/orchestrators"
	"bizkit/internal/application/viewsync"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// renderMarkdown converts a markdown string to HTML. On conversion
// failure the raw text comes back unrendered.
func renderMarkdown(md string) string {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return md
	}
	return buf.String()
}

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// requireSession extracts the session or writes a 401.
func requireSession(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return middleware.Session{}, false
	}
	return sess, true
}

// requireAdmin checks the session for admin role and returns the session.
// Returns false if the request should not proceed.
func requireAdmin(w http.ResponseWriter, r *http.Request) (middleware.Session, bool) {
	sess, ok := requireSession(w, r)
	if !ok {
		return middleware.Session{}, false
	}
	if sess.Role != "admin" {
		slog.Warn("auth_denied", "path", r.URL.Path, "account_id", sess.AccountID, "role", sess.Role, "required", "admin")
		http.Error(w, "Forbidden", http.StatusForbidden)
		return middleware.Session{}, false
	}
	return sess, true
}

// acquireView takes the per-view mutation gate or writes a 409.
// The caller must invoke the returned release func when done.
func acquireView(w http.ResponseWriter, view string) (func(), bool) {
	release, err := syncGate.Acquire(view)
	if err != nil {
		if errors.Is(err, viewsync.ErrSyncInFlight) {
			http.Error(w, "a change to this view is already being applied", http.StatusConflict)
			return nil, false
		}
		internalError(w, err)
		return nil, false
	}
	return release, true
}

// parseDateParam parses an optional RFC3339 or YYYY-MM-DD value.
// A missing value yields the zero time.
func parseDateParam(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

// writeMutationError reports a failed mutation. The body still carries
// the re-fetched canonical record set when the orchestrator produced
// one, so the client can reconcile its view against what actually
// persisted. Validation rejections echo the domain message; a missing
// record is a 404; store failures are logged and kept generic.
func writeMutationError(w http.ResponseWriter, err error, body map[string]any) {
	if body == nil {
		body = map[string]any{}
	}
	switch {
	case orchestrators.IsValidation(err):
		body["error"] = err.Error()
		writeJSON(w, http.StatusBadRequest, body)
	case errors.Is(err, sql.ErrNoRows):
		body["error"] = "not found"
		writeJSON(w, http.StatusNotFound, body)
	default:
		slog.Error("mutation_failed", "error", err.Error())
		body["error"] = "internal server error"
		writeJSON(w, http.StatusInternalServerError, body)
	}
}

package web

import "net/http"

// registerRoutes attaches every API handler to the mux. Auth is enforced
// inside each handler; the session middleware only populates context.
func registerRoutes(mux *http.ServeMux) {
	// Auth
	mux.HandleFunc("/api/auth/login", handleLogin)
	mux.HandleFunc("/api/auth/logout", handleLogout)
	mux.HandleFunc("/api/auth/me", handleMe)

	// Dashboard views
	mux.HandleFunc("/api/overview", handleOverview)
	mux.HandleFunc("/api/follow-ups", handleFollowUps)
	mux.HandleFunc("/api/todos", handleTodos)
	mux.HandleFunc("/api/news", handleNews)

	// Timeline
	mux.HandleFunc("/api/timeline", handleTimeline)
	mux.HandleFunc("/api/projects", handleProjects)

	// Pipeline
	mux.HandleFunc("/api/leads", handleLeads)
	mux.HandleFunc("/api/leads/board", handleLeadBoard)
	mux.HandleFunc("/api/clients", handleClients)

	// Calendar
	mux.HandleFunc("/api/calendar/events", handleCalendarEvents)

	// Admin
	mux.HandleFunc("/api/perf", handlePerf)
}

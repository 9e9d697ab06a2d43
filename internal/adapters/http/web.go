package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"bizkit/internal/adapters/calendar"
	"bizkit/internal/adapters/email"
	"bizkit/internal/adapters/http/middleware"
	"bizkit/internal/adapters/http/perf"
	accountStore "bizkit/internal/adapters/storage/account"
	clientStore "bizkit/internal/adapters/storage/client"
	followUpStore "bizkit/internal/adapters/storage/followup"
	leadStore "bizkit/internal/adapters/storage/lead"
	newsStore "bizkit/internal/adapters/storage/news"
	projectStore "bizkit/internal/adapters/storage/project"
	todoStore "bizkit/internal/adapters/storage/todo"
	"bizkit/internal/application/viewsync"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore  accountStore.Store
	FollowUpStore followUpStore.Store
	TodoStore     todoStore.Store
	ProjectStore  projectStore.Store
	LeadStore     leadStore.Store
	ClientStore   clientStore.Store
	NewsStore     newsStore.Store
}

// loadCSRFKey reads the CSRF secret from BIZKIT_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("BIZKIT_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("BIZKIT_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("BIZKIT_ENV") == "production" {
		log.Fatal("BIZKIT_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set BIZKIT_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Per-view mutation gate: one in-flight mutation per board or list.
var syncGate = viewsync.NewGate()

// Global calendar provider (set by SetCalendarProvider)
var calendarProvider calendar.Provider

// SetCalendarProvider sets the provider backing /api/calendar/events.
// A nil provider leaves the calendar section empty and unsynced.
func SetCalendarProvider(p calendar.Provider) {
	calendarProvider = p
}

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from string) {
	emailSender = sender
	emailFromAddress = from
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, collector *perf.Collector) http.Handler {
	stores = s
	perfCollector = collector
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("BIZKIT_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}

package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	_ "modernc.org/sqlite"

	"bizkit/internal/adapters/calendar"
	emailPkg "bizkit/internal/adapters/email"
	web "bizkit/internal/adapters/http"
	"bizkit/internal/adapters/http/perf"
	"bizkit/internal/adapters/storage"
	accountStore "bizkit/internal/adapters/storage/account"
	clientStore "bizkit/internal/adapters/storage/client"
	followUpStore "bizkit/internal/adapters/storage/followup"
	leadStore "bizkit/internal/adapters/storage/lead"
	newsStore "bizkit/internal/adapters/storage/news"
	projectStore "bizkit/internal/adapters/storage/project"
	todoStore "bizkit/internal/adapters/storage/todo"
	"bizkit/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is optional; real env vars win
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env")
	}

	// Open database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("BIZKIT_DB", "bizkit.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.MigrateDB(db, dbPath); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	acctStore := accountStore.NewSQLiteStore(timedDB)
	fuStore := followUpStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore:  acctStore,
		FollowUpStore: fuStore,
		TodoStore:     todoStore.NewSQLiteStore(timedDB),
		ProjectStore:  projectStore.NewSQLiteStore(timedDB),
		LeadStore:     leadStore.NewSQLiteStore(timedDB),
		ClientStore:   clientStore.NewSQLiteStore(timedDB),
		NewsStore:     newsStore.NewSQLiteStore(timedDB),
	}

	// Seed default admin account if no accounts exist
	adminEmail := envOrDefault("BIZKIT_ADMIN_EMAIL", "admin@bizkit.app")
	adminPassword := envOrDefault("BIZKIT_ADMIN_PASSWORD", "change-me-before-launch")
	seedDeps := orchestrators.SeedAdminDeps{
		AccountStore: acctStore,
		GenerateID:   func() string { return uuid.New().String() },
		Now:          time.Now,
	}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), seedDeps, adminEmail, adminPassword); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Configure email sender
	resendKey := os.Getenv("BIZKIT_RESEND_KEY")
	emailFrom := envOrDefault("BIZKIT_RESEND_FROM", "BizKit <noreply@bizkit.app>")
	var sender emailPkg.Sender
	if resendKey != "" {
		sender = emailPkg.NewResendSender(resendKey, emailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		if os.Getenv("BIZKIT_ENV") == "production" {
			log.Println("WARNING: BIZKIT_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set BIZKIT_RESEND_KEY for real delivery)")
		}
	}
	web.SetEmailSender(sender, emailFrom)

	// Calendar: no connected account yet; the cache keeps the interface
	// warm for a real provider later
	web.SetCalendarProvider(calendar.NewCachedProvider(calendar.NewNoopProvider(), 5*time.Minute))

	// Daily follow-up reminder digests
	reminderDeps := orchestrators.ReminderDeps{
		AccountStore:  acctStore,
		FollowUpStore: fuStore,
		Sender:        sender,
		Now:           time.Now,
		FromAddress:   emailFrom,
	}
	scheduler := cron.New()
	reminderSpec := envOrDefault("BIZKIT_REMINDER_CRON", "0 8 * * *")
	if _, err := scheduler.AddFunc(reminderSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		sent, err := orchestrators.ExecuteSendReminders(ctx, reminderDeps)
		if err != nil {
			log.Printf("reminder run failed: %v", err)
			return
		}
		log.Printf("reminder run complete: %d digest(s) sent", sent)
	}); err != nil {
		log.Fatalf("invalid BIZKIT_REMINDER_CRON %q: %v", reminderSpec, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	mux := web.NewMux("static", stores, collector)

	addr := envOrDefault("BIZKIT_ADDR", ":8080")
	log.Printf("BizKit %s starting on %s (env=%s, schema=%d)", version, addr, envOrDefault("BIZKIT_ENV", "development"), storage.LatestSchemaVersion())

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

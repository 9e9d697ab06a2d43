package storage

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// migrations holds the ordered schema steps. Index i runs when the
// database's user_version is <= i; user_version is bumped after each step.
var migrations = []string{
	// v1: initial schema
	`
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS follow_up (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		company TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		schedule_at TEXT,
		created_at TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES account(id)
	);

	CREATE TABLE IF NOT EXISTS todo (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		tag TEXT NOT NULL,
		tag_color TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL,
		assignee TEXT NOT NULL,
		assignee_org TEXT NOT NULL DEFAULT '',
		creator_name TEXT NOT NULL DEFAULT '',
		creator_org TEXT NOT NULL DEFAULT '',
		due_date TEXT NOT NULL,
		done INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES account(id)
	);

	CREATE TABLE IF NOT EXISTS project (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		client TEXT NOT NULL,
		tag TEXT NOT NULL,
		progress INTEGER NOT NULL DEFAULT 0,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		avatar TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS lead (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		company TEXT NOT NULL DEFAULT '',
		industry TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		follow_up TEXT,
		linkedin_url TEXT NOT NULL DEFAULT '',
		avatar_url TEXT NOT NULL DEFAULT '',
		active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES account(id)
	);

	CREATE TABLE IF NOT EXISTS client (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		company TEXT NOT NULL DEFAULT '',
		company_website TEXT NOT NULL DEFAULT '',
		industry TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		linkedin TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		active INTEGER NOT NULL DEFAULT 1,
		billing_name TEXT NOT NULL DEFAULT '',
		billing_email TEXT NOT NULL DEFAULT '',
		billing_abn TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS news (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		url TEXT NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		image TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES account(id)
	);
	`,
	// v2: lookup indexes for the per-user list queries
	`
	CREATE INDEX IF NOT EXISTS idx_follow_up_user ON follow_up(user_id, schedule_at);
	CREATE INDEX IF NOT EXISTS idx_todo_user ON todo(user_id, due_date);
	CREATE INDEX IF NOT EXISTS idx_lead_user ON lead(user_id, status);
	CREATE INDEX IF NOT EXISTS idx_news_user ON news(user_id, created_at);
	`,
}

// LatestSchemaVersion returns the schema version the binary expects.
func LatestSchemaVersion() int {
	return len(migrations)
}

// SchemaVersion reads the database's current schema version.
// PRE: db is a valid database connection
// POST: returns user_version (0 for a fresh database)
func SchemaVersion(db *sql.DB) (int, error) {
	var version int
	err := db.QueryRow("PRAGMA user_version").Scan(&version)
	return version, err
}

// MigrateDB brings the database schema up to the latest version.
// PRE: db is a valid database connection
// POST: user_version == LatestSchemaVersion(); all tables exist
func MigrateDB(db *sql.DB, dbPath string) error {
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version > len(migrations) {
		return fmt.Errorf("database %s has schema version %d, binary supports up to %d", dbPath, version, len(migrations))
	}

	for i := version; i < len(migrations); i++ {
		if _, err := db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", i+1)); err != nil {
			return fmt.Errorf("failed to bump schema version to %d: %w", i+1, err)
		}
		slog.Info("migration_applied", "version", i+1)
	}
	return nil
}

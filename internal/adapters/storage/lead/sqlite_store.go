package lead

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"bizkit/internal/adapters/storage"
	domain "bizkit/internal/domain/lead"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new LeadStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const selectColumns = "id, user_id, name, email, company, industry, source, status, follow_up, linkedin_url, avatar_url, active, created_at"

// GetByID retrieves a Lead by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Lead, error) {
	query := "SELECT " + selectColumns + " FROM lead WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	entity, err := scanLead(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Lead{}, fmt.Errorf("lead not found: %w", err)
	}
	return entity, err
}

// Save persists a Lead to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Lead) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{"id", "user_id", "name", "email", "company", "industry", "source", "status", "follow_up", "linkedin_url", "avatar_url", "active", "created_at"}
	placeholders := []string{"?", "?", "?", "?", "?", "?", "?", "?", "?", "?", "?", "?", "?"}
	updates := []string{
		"name=excluded.name",
		"email=excluded.email",
		"company=excluded.company",
		"industry=excluded.industry",
		"source=excluded.source",
		"status=excluded.status",
		"follow_up=excluded.follow_up",
		"linkedin_url=excluded.linkedin_url",
		"avatar_url=excluded.avatar_url",
		"active=excluded.active",
	}

	query := fmt.Sprintf(
		"INSERT INTO lead (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	var followUp interface{}
	if !entity.FollowUp.IsZero() {
		followUp = entity.FollowUp.Format(time.RFC3339Nano)
	}

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.UserID,
		entity.Name,
		entity.Email,
		entity.Company,
		entity.Industry,
		entity.Source,
		entity.Status,
		followUp,
		entity.LinkedInURL,
		entity.AvatarURL,
		boolToInt(entity.Active),
		entity.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Lead from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM lead WHERE id = ?", id)
	return err
}

// ListByUser retrieves all leads owned by an account, oldest first.
// Filtering and pagination happen in the application layer; the pipeline
// projections need the full set to build columns and stats anyway.
// PRE: userID is non-empty
// POST: Returns entities ordered by created_at ascending
func (s *SQLiteStore) ListByUser(ctx context.Context, userID string) ([]domain.Lead, error) {
	query := "SELECT " + selectColumns + " FROM lead WHERE user_id = ? ORDER BY created_at ASC"
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Lead
	for rows.Next() {
		entity, err := scanLead(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

// scanLead extracts a Lead from a row scanner function.
func scanLead(scan func(dest ...interface{}) error) (domain.Lead, error) {
	var entity domain.Lead
	var followUp sql.NullString
	var createdAt string
	var active int
	err := scan(
		&entity.ID,
		&entity.UserID,
		&entity.Name,
		&entity.Email,
		&entity.Company,
		&entity.Industry,
		&entity.Source,
		&entity.Status,
		&followUp,
		&entity.LinkedInURL,
		&entity.AvatarURL,
		&active,
		&createdAt,
	)
	if err != nil {
		return domain.Lead{}, err
	}
	if followUp.Valid && followUp.String != "" {
		entity.FollowUp, _ = parseTime(followUp.String)
	}
	entity.Active = active != 0
	entity.CreatedAt, _ = parseTime(createdAt)
	return entity, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		t, err := time.Parse(f, s)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time: %s", s)
}

package followup

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"bizkit/internal/adapters/storage"
	domain "bizkit/internal/domain/followup"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new FollowUpStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const selectColumns = "id, user_id, name, company, description, schedule_at, created_at"

// GetByID retrieves a FollowUp by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.FollowUp, error) {
	query := "SELECT " + selectColumns + " FROM follow_up WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	entity, err := scanFollowUp(row.Scan)
	if err == sql.ErrNoRows {
		return domain.FollowUp{}, fmt.Errorf("follow-up not found: %w", err)
	}
	return entity, err
}

// Save persists a FollowUp to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.FollowUp) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{"id", "user_id", "name", "company", "description", "schedule_at", "created_at"}
	placeholders := []string{"?", "?", "?", "?", "?", "?", "?"}
	updates := []string{
		"name=excluded.name",
		"company=excluded.company",
		"description=excluded.description",
		"schedule_at=excluded.schedule_at",
	}

	query := fmt.Sprintf(
		"INSERT INTO follow_up (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	var scheduleAt interface{}
	if !entity.ScheduleAt.IsZero() {
		scheduleAt = entity.ScheduleAt.Format(time.RFC3339Nano)
	}

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.UserID,
		entity.Name,
		entity.Company,
		entity.Description,
		scheduleAt,
		entity.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a FollowUp from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM follow_up WHERE id = ?", id)
	return err
}

// ListByUser retrieves all follow-ups owned by an account, soonest first.
// PRE: userID is non-empty
// POST: Returns entities ordered by schedule_at ascending
func (s *SQLiteStore) ListByUser(ctx context.Context, userID string) ([]domain.FollowUp, error) {
	query := "SELECT " + selectColumns + " FROM follow_up WHERE user_id = ? ORDER BY schedule_at ASC"
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.FollowUp
	for rows.Next() {
		entity, err := scanFollowUp(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

// scanFollowUp extracts a FollowUp from a row scanner function.
func scanFollowUp(scan func(dest ...interface{}) error) (domain.FollowUp, error) {
	var entity domain.FollowUp
	var scheduleAt sql.NullString
	var createdAt string
	err := scan(
		&entity.ID,
		&entity.UserID,
		&entity.Name,
		&entity.Company,
		&entity.Description,
		&scheduleAt,
		&createdAt,
	)
	if err != nil {
		return domain.FollowUp{}, err
	}
	if scheduleAt.Valid && scheduleAt.String != "" {
		entity.ScheduleAt, _ = parseTime(scheduleAt.String)
	}
	entity.CreatedAt, _ = parseTime(createdAt)
	return entity, nil
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

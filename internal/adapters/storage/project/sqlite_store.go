package project

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"bizkit/internal/adapters/storage"
	domain "bizkit/internal/domain/project"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new ProjectStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const selectColumns = "id, name, client, tag, progress, start_date, end_date, avatar, created_at"

// GetByID retrieves a Project by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Project, error) {
	query := "SELECT " + selectColumns + " FROM project WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	entity, err := scanProject(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Project{}, fmt.Errorf("project not found: %w", err)
	}
	return entity, err
}

// Save persists a Project to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Project) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{"id", "name", "client", "tag", "progress", "start_date", "end_date", "avatar", "created_at"}
	placeholders := []string{"?", "?", "?", "?", "?", "?", "?", "?", "?"}
	updates := []string{
		"name=excluded.name",
		"client=excluded.client",
		"tag=excluded.tag",
		"progress=excluded.progress",
		"start_date=excluded.start_date",
		"end_date=excluded.end_date",
		"avatar=excluded.avatar",
	}

	query := fmt.Sprintf(
		"INSERT INTO project (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		entity.Client,
		entity.Tag,
		entity.Progress,
		entity.StartDate.Format(time.RFC3339Nano),
		entity.EndDate.Format(time.RFC3339Nano),
		entity.Avatar,
		entity.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Project from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM project WHERE id = ?", id)
	return err
}

// List retrieves all projects, earliest start first.
// PRE: none
// POST: Returns entities ordered by start_date ascending
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Project, error) {
	query := "SELECT " + selectColumns + " FROM project ORDER BY start_date ASC"
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Project
	for rows.Next() {
		entity, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

// scanProject extracts a Project from a row scanner function.
func scanProject(scan func(dest ...interface{}) error) (domain.Project, error) {
	var entity domain.Project
	var startDate, endDate, createdAt string
	err := scan(
		&entity.ID,
		&entity.Name,
		&entity.Client,
		&entity.Tag,
		&entity.Progress,
		&startDate,
		&endDate,
		&entity.Avatar,
		&createdAt,
	)
	if err != nil {
		return domain.Project{}, err
	}
	entity.StartDate, _ = parseTime(startDate)
	entity.EndDate, _ = parseTime(endDate)
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

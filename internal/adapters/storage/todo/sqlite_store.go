package todo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"bizkit/internal/adapters/storage"
	domain "bizkit/internal/domain/todo"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new TodoStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const selectColumns = "id, user_id, tag, tag_color, title, assignee, assignee_org, creator_name, creator_org, due_date, done, created_at"

// GetByID retrieves a Todo by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Todo, error) {
	query := "SELECT " + selectColumns + " FROM todo WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	entity, err := scanTodo(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Todo{}, fmt.Errorf("todo not found: %w", err)
	}
	return entity, err
}

// Save persists a Todo to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Todo) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{"id", "user_id", "tag", "tag_color", "title", "assignee", "assignee_org", "creator_name", "creator_org", "due_date", "done", "created_at"}
	placeholders := []string{"?", "?", "?", "?", "?", "?", "?", "?", "?", "?", "?", "?"}
	updates := []string{
		"tag=excluded.tag",
		"tag_color=excluded.tag_color",
		"title=excluded.title",
		"assignee=excluded.assignee",
		"assignee_org=excluded.assignee_org",
		"creator_name=excluded.creator_name",
		"creator_org=excluded.creator_org",
		"due_date=excluded.due_date",
		"done=excluded.done",
	}

	query := fmt.Sprintf(
		"INSERT INTO todo (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.UserID,
		entity.Tag,
		entity.TagColor,
		entity.Title,
		entity.Assignee,
		entity.AssigneeOrg,
		entity.CreatorName,
		entity.CreatorOrg,
		entity.DueDate.Format(time.RFC3339Nano),
		boolToInt(entity.Done),
		entity.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Todo from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM todo WHERE id = ?", id)
	return err
}

// ListByUser retrieves all todos owned by an account, earliest due first.
// PRE: userID is non-empty
// POST: Returns entities ordered by due_date ascending
func (s *SQLiteStore) ListByUser(ctx context.Context, userID string) ([]domain.Todo, error) {
	query := "SELECT " + selectColumns + " FROM todo WHERE user_id = ? ORDER BY due_date ASC"
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Todo
	for rows.Next() {
		entity, err := scanTodo(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

// scanTodo extracts a Todo from a row scanner function.
func scanTodo(scan func(dest ...interface{}) error) (domain.Todo, error) {
	var entity domain.Todo
	var dueDate, createdAt string
	var done int
	err := scan(
		&entity.ID,
		&entity.UserID,
		&entity.Tag,
		&entity.TagColor,
		&entity.Title,
		&entity.Assignee,
		&entity.AssigneeOrg,
		&entity.CreatorName,
		&entity.CreatorOrg,
		&dueDate,
		&done,
		&createdAt,
	)
	if err != nil {
		return domain.Todo{}, err
	}
	entity.DueDate, _ = parseTime(dueDate)
	entity.Done = done != 0
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

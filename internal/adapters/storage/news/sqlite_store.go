package news

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"bizkit/internal/adapters/storage"
	domain "bizkit/internal/domain/news"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new NewsStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const selectColumns = "id, user_id, url, title, image, source, created_at"

// GetByID retrieves a news Item by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Item, error) {
	query := "SELECT " + selectColumns + " FROM news WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	entity, err := scanItem(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Item{}, fmt.Errorf("news item not found: %w", err)
	}
	return entity, err
}

// Save persists a news Item to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{"id", "user_id", "url", "title", "image", "source", "created_at"}
	placeholders := []string{"?", "?", "?", "?", "?", "?", "?"}
	updates := []string{
		"url=excluded.url",
		"title=excluded.title",
		"image=excluded.image",
		"source=excluded.source",
	}

	query := fmt.Sprintf(
		"INSERT INTO news (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.UserID,
		entity.URL,
		entity.Title,
		entity.Image,
		entity.Source,
		entity.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a news Item from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM news WHERE id = ?", id)
	return err
}

// ListByUser retrieves all news items saved by an account, newest first.
// PRE: userID is non-empty
// POST: Returns entities ordered by created_at descending
func (s *SQLiteStore) ListByUser(ctx context.Context, userID string) ([]domain.Item, error) {
	query := "SELECT " + selectColumns + " FROM news WHERE user_id = ? ORDER BY created_at DESC"
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Item
	for rows.Next() {
		entity, err := scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

// scanItem extracts a news Item from a row scanner function.
func scanItem(scan func(dest ...interface{}) error) (domain.Item, error) {
	var entity domain.Item
	var createdAt string
	err := scan(
		&entity.ID,
		&entity.UserID,
		&entity.URL,
		&entity.Title,
		&entity.Image,
		&entity.Source,
		&createdAt,
	)
	if err != nil {
		return domain.Item{}, err
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

package client

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"bizkit/internal/adapters/storage"
	domain "bizkit/internal/domain/client"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new ClientStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const selectColumns = "id, name, email, company, company_website, industry, source, city, country, linkedin, phone, active, billing_name, billing_email, billing_abn, created_at"

// GetByID retrieves a Client by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Client, error) {
	query := "SELECT " + selectColumns + " FROM client WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	entity, err := scanClient(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Client{}, fmt.Errorf("client not found: %w", err)
	}
	return entity, err
}

// Save persists a Client to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Client) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	fields := []string{"id", "name", "email", "company", "company_website", "industry", "source", "city", "country", "linkedin", "phone", "active", "billing_name", "billing_email", "billing_abn", "created_at"}
	placeholders := []string{"?", "?", "?", "?", "?", "?", "?", "?", "?", "?", "?", "?", "?", "?", "?", "?"}
	updates := []string{
		"name=excluded.name",
		"email=excluded.email",
		"company=excluded.company",
		"company_website=excluded.company_website",
		"industry=excluded.industry",
		"source=excluded.source",
		"city=excluded.city",
		"country=excluded.country",
		"linkedin=excluded.linkedin",
		"phone=excluded.phone",
		"active=excluded.active",
		"billing_name=excluded.billing_name",
		"billing_email=excluded.billing_email",
		"billing_abn=excluded.billing_abn",
	}

	query := fmt.Sprintf(
		"INSERT INTO client (%s) VALUES (%s) ON CONFLICT(id) DO UPDATE SET %s",
		strings.Join(fields, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)

	_, err = tx.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		entity.Email,
		entity.Company,
		entity.CompanyWebsite,
		entity.Industry,
		entity.Source,
		entity.City,
		entity.Country,
		entity.LinkedIn,
		entity.Phone,
		boolToInt(entity.Active),
		entity.BillingName,
		entity.BillingEmail,
		entity.BillingABN,
		entity.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes a Client from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM client WHERE id = ?", id)
	return err
}

// List retrieves all clients, newest first.
// PRE: none
// POST: Returns entities ordered by created_at descending
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Client, error) {
	query := "SELECT " + selectColumns + " FROM client ORDER BY created_at DESC"
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Client
	for rows.Next() {
		entity, err := scanClient(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

// scanClient extracts a Client from a row scanner function.
func scanClient(scan func(dest ...interface{}) error) (domain.Client, error) {
	var entity domain.Client
	var createdAt string
	var active int
	err := scan(
		&entity.ID,
		&entity.Name,
		&entity.Email,
		&entity.Company,
		&entity.CompanyWebsite,
		&entity.Industry,
		&entity.Source,
		&entity.City,
		&entity.Country,
		&entity.LinkedIn,
		&entity.Phone,
		&active,
		&entity.BillingName,
		&entity.BillingEmail,
		&entity.BillingABN,
		&createdAt,
	)
	if err != nil {
		return domain.Client{}, err
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

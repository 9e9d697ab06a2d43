package lead

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"bizkit/internal/adapters/storage"
	domain "bizkit/internal/domain/lead"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := storage.MigrateDB(db, ":memory:"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// FK on lead.user_id
	if _, err := db.Exec(`INSERT INTO account (id, email, role, created_at) VALUES ('u1', 'u1@test.com', 'user', '2026-01-01T00:00:00Z')`); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return NewSQLiteStore(db)
}

// TestSQLiteStore_SaveAndGet verifies insert, upsert and round-trip of the
// nullable follow-up date.
func TestSQLiteStore_SaveAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	l := domain.Lead{
		ID:        "l1",
		UserID:    "u1",
		Name:      "Jordan Vale",
		Email:     "jordan@example.com",
		Company:   "DashboardPro",
		Status:    domain.StatusNew,
		Active:    true,
		CreatedAt: time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
	}
	if err := store.Save(ctx, l); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.GetByID(ctx, "l1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Jordan Vale" || got.Status != domain.StatusNew {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if !got.FollowUp.IsZero() {
		t.Errorf("expected zero follow-up, got %v", got.FollowUp)
	}

	// Upsert: change status, set a follow-up date
	l.Status = domain.StatusReachedOut
	l.FollowUp = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	if err := store.Save(ctx, l); err != nil {
		t.Fatalf("Save (upsert): %v", err)
	}
	got, err = store.GetByID(ctx, "l1")
	if err != nil {
		t.Fatalf("GetByID after upsert: %v", err)
	}
	if got.Status != domain.StatusReachedOut {
		t.Errorf("status = %q, want %q", got.Status, domain.StatusReachedOut)
	}
	if !got.FollowUp.Equal(l.FollowUp) {
		t.Errorf("follow-up = %v, want %v", got.FollowUp, l.FollowUp)
	}
}

// TestSQLiteStore_GetByID_NotFound verifies the not-found error path.
func TestSQLiteStore_GetByID_NotFound(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.GetByID(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for missing lead")
	}
}

// TestSQLiteStore_ListByUser verifies scoping and creation-order listing.
func TestSQLiteStore_ListByUser(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"l1", "l2", "l3"} {
		l := domain.Lead{
			ID:        id,
			UserID:    "u1",
			Name:      "Lead " + id,
			Email:     id + "@example.com",
			Status:    domain.StatusNew,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := store.Save(ctx, l); err != nil {
			t.Fatalf("Save %s: %v", id, err)
		}
	}

	leads, err := store.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(leads) != 3 {
		t.Fatalf("got %d leads, want 3", len(leads))
	}
	for i, want := range []string{"l1", "l2", "l3"} {
		if leads[i].ID != want {
			t.Errorf("leads[%d].ID = %s, want %s", i, leads[i].ID, want)
		}
	}

	other, err := store.ListByUser(ctx, "nobody")
	if err != nil {
		t.Fatalf("ListByUser (other): %v", err)
	}
	if len(other) != 0 {
		t.Errorf("expected no leads for unknown user, got %d", len(other))
	}
}

// TestSQLiteStore_Delete verifies removal.
func TestSQLiteStore_Delete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	l := domain.Lead{ID: "l1", UserID: "u1", Name: "X", Email: "x@example.com", Status: domain.StatusNew, CreatedAt: time.Now()}
	if err := store.Save(ctx, l); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, "l1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.GetByID(ctx, "l1"); err == nil {
		t.Fatal("expected error after delete")
	}
}

package orchestrators

import (
	"context"
	"errors"
	"testing"

	"bizkit/internal/domain/followup"
)

// mockFollowUpStoreForOrch implements FollowUpStoreForOrchestrator for testing.
type mockFollowUpStoreForOrch struct {
	items     map[string]followup.FollowUp
	saveCalls int
	saveErr   error
	listErr   error
}

func newMockFollowUpStore() *mockFollowUpStoreForOrch {
	return &mockFollowUpStoreForOrch{items: make(map[string]followup.FollowUp)}
}

func (m *mockFollowUpStoreForOrch) GetByID(_ context.Context, id string) (followup.FollowUp, error) {
	f, ok := m.items[id]
	if !ok {
		return followup.FollowUp{}, errors.New("not found")
	}
	return f, nil
}

func (m *mockFollowUpStoreForOrch) Save(_ context.Context, f followup.FollowUp) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.items[f.ID] = f
	return nil
}

func (m *mockFollowUpStoreForOrch) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *mockFollowUpStoreForOrch) ListByUser(_ context.Context, userID string) ([]followup.FollowUp, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []followup.FollowUp
	for _, f := range m.items {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func seedFollowUp(store *mockFollowUpStoreForOrch, id string) followup.FollowUp {
	f := followup.FollowUp{
		ID:         id,
		UserID:     "u1",
		Name:       "Alice Chen",
		Company:    "Acme",
		ScheduleAt: fixedTime.AddDate(0, 0, 3),
		CreatedAt:  fixedTime,
	}
	store.items[id] = f
	return f
}

func followUpDeps(store *mockFollowUpStoreForOrch) FollowUpDeps {
	return FollowUpDeps{FollowUpStore: store, GenerateID: fixedID, Now: fixedNow}
}

func TestExecuteCreateFollowUp_Valid(t *testing.T) {
	store := newMockFollowUpStore()
	items, err := ExecuteCreateFollowUp(context.Background(), CreateFollowUpInput{
		UserID:     "u1",
		Name:       "Alice Chen",
		Company:    "Acme",
		ScheduleAt: fixedTime.AddDate(0, 0, 1),
	}, followUpDeps(store))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	created, ok := store.items["test-id-001"]
	if !ok {
		t.Fatal("expected follow-up to be persisted")
	}
	if !created.CreatedAt.Equal(fixedTime) {
		t.Errorf("expected CreatedAt=%v, got %v", fixedTime, created.CreatedAt)
	}
	if len(items) != 1 {
		t.Errorf("expected refreshed list with 1 item, got %d", len(items))
	}
}

func TestExecuteCreateFollowUp_MissingScheduleRejected(t *testing.T) {
	store := newMockFollowUpStore()
	seedFollowUp(store, "f1")

	items, err := ExecuteCreateFollowUp(context.Background(), CreateFollowUpInput{
		UserID:  "u1",
		Name:    "Bob Riley",
		Company: "Corp",
	}, followUpDeps(store))
	if !errors.Is(err, followup.ErrMissingSchedule) {
		t.Fatalf("expected ErrMissingSchedule, got %v", err)
	}
	if store.saveCalls != 0 {
		t.Errorf("expected 0 saves, got %d", store.saveCalls)
	}
	if len(items) != 1 {
		t.Errorf("expected existing list alongside the error, got %d items", len(items))
	}
}

func TestExecuteUpdateFollowUp_NoOpSkipsWrite(t *testing.T) {
	store := newMockFollowUpStore()
	f := seedFollowUp(store, "f1")

	_, err := ExecuteUpdateFollowUp(context.Background(), UpdateFollowUpInput{
		FollowUpID:  "f1",
		Name:        f.Name,
		Company:     f.Company,
		Description: f.Description,
		ScheduleAt:  f.ScheduleAt,
	}, followUpDeps(store))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.saveCalls != 0 {
		t.Errorf("expected identical submission to skip the write, got %d saves", store.saveCalls)
	}
}

func TestExecuteUpdateFollowUp_RescheduleWrites(t *testing.T) {
	store := newMockFollowUpStore()
	f := seedFollowUp(store, "f1")
	newDate := f.ScheduleAt.AddDate(0, 0, 7)

	_, err := ExecuteUpdateFollowUp(context.Background(), UpdateFollowUpInput{
		FollowUpID:  "f1",
		Name:        f.Name,
		Company:     f.Company,
		Description: f.Description,
		ScheduleAt:  newDate,
	}, followUpDeps(store))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.saveCalls != 1 {
		t.Errorf("expected 1 save, got %d", store.saveCalls)
	}
	if got := store.items["f1"].ScheduleAt; !got.Equal(newDate) {
		t.Errorf("expected schedule %v, got %v", newDate, got)
	}
}

func TestExecuteUpdateFollowUp_WriteFailureStillRefetches(t *testing.T) {
	store := newMockFollowUpStore()
	f := seedFollowUp(store, "f1")
	store.saveErr = errors.New("disk full")

	items, err := ExecuteUpdateFollowUp(context.Background(), UpdateFollowUpInput{
		FollowUpID: "f1",
		Name:       "Renamed",
		Company:    f.Company,
		ScheduleAt: f.ScheduleAt,
	}, followUpDeps(store))
	if err == nil {
		t.Fatal("expected write error")
	}
	if len(items) != 1 {
		t.Errorf("expected refreshed list alongside the error, got %d items", len(items))
	}
	if got := store.items["f1"].Name; got != f.Name {
		t.Errorf("expected stored name unchanged after failed write, got %q", got)
	}
}

func TestExecuteDeleteFollowUp_RemovesAndRefetches(t *testing.T) {
	store := newMockFollowUpStore()
	seedFollowUp(store, "f1")
	seedFollowUp(store, "f2")

	items, err := ExecuteDeleteFollowUp(context.Background(), "f1", followUpDeps(store))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "f2" {
		t.Errorf("expected only f2 left, got %+v", items)
	}
}

func TestExecuteDeleteFollowUp_RefetchFailureSurfaces(t *testing.T) {
	store := newMockFollowUpStore()
	seedFollowUp(store, "f1")
	store.listErr = errors.New("connection lost")

	_, err := ExecuteDeleteFollowUp(context.Background(), "f1", followUpDeps(store))
	if err == nil {
		t.Fatal("expected refetch error to surface when the delete succeeded")
	}
}

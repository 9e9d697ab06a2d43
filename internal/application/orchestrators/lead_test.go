package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"bizkit/internal/domain/lead"
)

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

func fixedID() string { return "test-id-001" }

// mockLeadStoreForOrch implements LeadStoreForOrchestrator for testing.
type mockLeadStoreForOrch struct {
	leads     map[string]lead.Lead
	saveCalls int
	saveErr   error
	listErr   error
}

func newMockLeadStore() *mockLeadStoreForOrch {
	return &mockLeadStoreForOrch{leads: make(map[string]lead.Lead)}
}

func (m *mockLeadStoreForOrch) GetByID(_ context.Context, id string) (lead.Lead, error) {
	l, ok := m.leads[id]
	if !ok {
		return lead.Lead{}, errors.New("not found")
	}
	return l, nil
}

func (m *mockLeadStoreForOrch) Save(_ context.Context, l lead.Lead) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.leads[l.ID] = l
	return nil
}

func (m *mockLeadStoreForOrch) Delete(_ context.Context, id string) error {
	delete(m.leads, id)
	return nil
}

func (m *mockLeadStoreForOrch) ListByUser(_ context.Context, userID string) ([]lead.Lead, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []lead.Lead
	for _, l := range m.leads {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func seedLead(store *mockLeadStoreForOrch, id, status string) lead.Lead {
	l := lead.Lead{
		ID:        id,
		UserID:    "u1",
		Name:      "Alice Chen",
		Email:     "alice@acme.test",
		Company:   "Acme",
		Status:    status,
		Active:    true,
		CreatedAt: fixedTime,
	}
	store.leads[id] = l
	return l
}

func leadDeps(store *mockLeadStoreForOrch) LeadDeps {
	return LeadDeps{LeadStore: store, GenerateID: fixedID, Now: fixedNow}
}

// --- ExecuteMoveLeadStatus tests ---

// TestExecuteMoveLeadStatus_RealMove verifies a drag to another column
// issues exactly one write and returns the refreshed list.
func TestExecuteMoveLeadStatus_RealMove(t *testing.T) {
	store := newMockLeadStore()
	seedLead(store, "l1", lead.StatusNew)

	items, err := ExecuteMoveLeadStatus(context.Background(), "l1", lead.StatusReachedOut, leadDeps(store))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.saveCalls != 1 {
		t.Errorf("expected exactly 1 save, got %d", store.saveCalls)
	}
	if got := store.leads["l1"].Status; got != lead.StatusReachedOut {
		t.Errorf("expected status %q, got %q", lead.StatusReachedOut, got)
	}
	if len(items) != 1 || items[0].Status != lead.StatusReachedOut {
		t.Errorf("expected refreshed list with moved lead, got %+v", items)
	}
}

// TestExecuteMoveLeadStatus_SameColumn verifies a drop on the current
// column writes nothing but still refetches.
func TestExecuteMoveLeadStatus_SameColumn(t *testing.T) {
	store := newMockLeadStore()
	seedLead(store, "l1", lead.StatusNew)

	items, err := ExecuteMoveLeadStatus(context.Background(), "l1", lead.StatusNew, leadDeps(store))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.saveCalls != 0 {
		t.Errorf("expected 0 saves on same-column drop, got %d", store.saveCalls)
	}
	if len(items) != 1 {
		t.Errorf("expected refreshed list, got %d items", len(items))
	}
}

// TestExecuteMoveLeadStatus_MoveOtherFieldsUntouched verifies the move
// replaces only the status.
func TestExecuteMoveLeadStatus_MoveOtherFieldsUntouched(t *testing.T) {
	store := newMockLeadStore()
	orig := seedLead(store, "l1", lead.StatusProposalSent)
	orig.FollowUp = time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	store.leads["l1"] = orig

	_, err := ExecuteMoveLeadStatus(context.Background(), "l1", lead.StatusClosed, leadDeps(store))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	moved := store.leads["l1"]
	if moved.Status != lead.StatusClosed {
		t.Errorf("expected status %q, got %q", lead.StatusClosed, moved.Status)
	}
	if !moved.FollowUp.Equal(orig.FollowUp) {
		t.Error("expected follow-up date to survive the move")
	}
	if moved.Name != orig.Name || moved.Company != orig.Company || moved.Active != orig.Active {
		t.Error("expected non-status fields unchanged")
	}
}

// TestExecuteMoveLeadStatus_InvalidStatus verifies unknown stages are
// rejected but the list still comes back.
func TestExecuteMoveLeadStatus_InvalidStatus(t *testing.T) {
	store := newMockLeadStore()
	seedLead(store, "l1", lead.StatusNew)

	items, err := ExecuteMoveLeadStatus(context.Background(), "l1", "Bogus Stage", leadDeps(store))
	if !errors.Is(err, lead.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if !IsValidation(err) {
		t.Error("expected the rejection to classify as a validation error")
	}
	if store.saveCalls != 0 {
		t.Errorf("expected 0 saves, got %d", store.saveCalls)
	}
	if len(items) != 1 {
		t.Errorf("expected refreshed list alongside the error, got %d items", len(items))
	}
	if got := store.leads["l1"].Status; got != lead.StatusNew {
		t.Errorf("expected status unchanged, got %q", got)
	}
}

// TestExecuteMoveLeadStatus_WriteFailureStillRefetches verifies the
// stored list is returned even when the write fails.
func TestExecuteMoveLeadStatus_WriteFailureStillRefetches(t *testing.T) {
	store := newMockLeadStore()
	seedLead(store, "l1", lead.StatusNew)
	store.saveErr = errors.New("disk full")

	items, err := ExecuteMoveLeadStatus(context.Background(), "l1", lead.StatusClosed, leadDeps(store))
	if err == nil {
		t.Fatal("expected write error")
	}
	if IsValidation(err) {
		t.Error("a store failure must not classify as a validation error")
	}
	if len(items) != 1 {
		t.Errorf("expected refreshed list alongside the error, got %d items", len(items))
	}
	if got := store.leads["l1"].Status; got != lead.StatusNew {
		t.Errorf("expected stored status unchanged after failed write, got %q", got)
	}
}

// TestExecuteMoveLeadStatus_NotFound verifies a missing lead fails
// without a refetch.
func TestExecuteMoveLeadStatus_NotFound(t *testing.T) {
	store := newMockLeadStore()
	_, err := ExecuteMoveLeadStatus(context.Background(), "ghost", lead.StatusNew, leadDeps(store))
	if err == nil {
		t.Fatal("expected error for unknown lead")
	}
}

// --- ExecuteCreateLead tests ---

func TestExecuteCreateLead_DefaultsStatusAndActive(t *testing.T) {
	store := newMockLeadStore()
	items, err := ExecuteCreateLead(context.Background(), CreateLeadInput{
		UserID: "u1",
		Name:   "Bob Riley",
		Email:  "bob@corp.test",
	}, leadDeps(store))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	created := store.leads["test-id-001"]
	if created.Status != lead.StatusNew {
		t.Errorf("expected default status %q, got %q", lead.StatusNew, created.Status)
	}
	if !created.Active {
		t.Error("expected new lead to be active")
	}
	if len(items) != 1 {
		t.Errorf("expected refreshed list with 1 lead, got %d", len(items))
	}
}

func TestExecuteCreateLead_InvalidEmail(t *testing.T) {
	store := newMockLeadStore()
	seedLead(store, "l1", lead.StatusNew)

	items, err := ExecuteCreateLead(context.Background(), CreateLeadInput{
		UserID: "u1",
		Name:   "Bob Riley",
		Email:  "not-an-email",
	}, leadDeps(store))
	if !errors.Is(err, lead.ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if store.saveCalls != 0 {
		t.Errorf("expected 0 saves, got %d", store.saveCalls)
	}
	if len(items) != 1 {
		t.Errorf("expected existing list alongside the error, got %d items", len(items))
	}
}

// --- ExecuteUpdateLead tests ---

func TestExecuteUpdateLead_NoOpSkipsWrite(t *testing.T) {
	store := newMockLeadStore()
	l := seedLead(store, "l1", lead.StatusNew)

	_, err := ExecuteUpdateLead(context.Background(), UpdateLeadInput{
		LeadID:  "l1",
		Name:    l.Name,
		Email:   l.Email,
		Company: l.Company,
		Status:  l.Status,
		Active:  l.Active,
	}, leadDeps(store))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.saveCalls != 0 {
		t.Errorf("expected identical submission to skip the write, got %d saves", store.saveCalls)
	}
}

func TestExecuteUpdateLead_ChangedFieldWrites(t *testing.T) {
	store := newMockLeadStore()
	l := seedLead(store, "l1", lead.StatusNew)

	_, err := ExecuteUpdateLead(context.Background(), UpdateLeadInput{
		LeadID:  "l1",
		Name:    l.Name,
		Email:   l.Email,
		Company: "Acme Holdings",
		Status:  l.Status,
		Active:  l.Active,
	}, leadDeps(store))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.saveCalls != 1 {
		t.Errorf("expected 1 save, got %d", store.saveCalls)
	}
	if got := store.leads["l1"].Company; got != "Acme Holdings" {
		t.Errorf("expected company updated, got %q", got)
	}
}

// --- ExecuteDeleteLead tests ---

func TestExecuteDeleteLead_RemovesAndRefetches(t *testing.T) {
	store := newMockLeadStore()
	seedLead(store, "l1", lead.StatusNew)
	seedLead(store, "l2", lead.StatusClosed)

	items, err := ExecuteDeleteLead(context.Background(), "l1", leadDeps(store))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "l2" {
		t.Errorf("expected only l2 left, got %+v", items)
	}
}

package projections

import (
	"context"
	"errors"
	"testing"

	domainLead "bizkit/internal/domain/lead"
)

// TestQueryGetLeadBoard verifies column partitioning and stats agree on
// the same lead set.
func TestQueryGetLeadBoard(t *testing.T) {
	store := &mockLeadStore{leads: []domainLead.Lead{
		{ID: "l1", Status: domainLead.StatusNew},
		{ID: "l2", Status: domainLead.StatusNew},
		{ID: "l3", Status: domainLead.StatusProposalSent},
	}}

	res, err := QueryGetLeadBoard(context.Background(), GetLeadBoardQuery{UserID: "u1"}, GetLeadBoardDeps{LeadStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Columns) != len(domainLead.Statuses) {
		t.Fatalf("columns = %d, want %d", len(res.Columns), len(domainLead.Statuses))
	}
	total := 0
	for _, col := range res.Columns {
		total += len(col.Leads)
	}
	if total != 3 || res.Stats.Total != 3 {
		t.Errorf("board holds %d leads, stats.Total = %d, want 3/3", total, res.Stats.Total)
	}
	if res.Columns[0].Status != domainLead.StatusNew || len(res.Columns[0].Leads) != 2 {
		t.Errorf("first column = %+v", res.Columns[0])
	}
}

// TestQueryGetLeadBoard_StoreError verifies store errors propagate.
func TestQueryGetLeadBoard_StoreError(t *testing.T) {
	store := &mockLeadStore{err: errors.New("db locked")}
	_, err := QueryGetLeadBoard(context.Background(), GetLeadBoardQuery{UserID: "u1"}, GetLeadBoardDeps{LeadStore: store})
	if err == nil {
		t.Fatal("expected error")
	}
}

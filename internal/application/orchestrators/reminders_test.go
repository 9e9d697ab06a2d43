package orchestrators

import (
	"context"
	"strings"
	"testing"

	emailAdapter "bizkit/internal/adapters/email"
	storageAccount "bizkit/internal/adapters/storage/account"
	"bizkit/internal/domain/account"
	"bizkit/internal/domain/followup"
)

// mockAccountLister implements AccountStoreForReminders for testing.
type mockAccountLister struct {
	accounts []account.Account
}

func (m *mockAccountLister) List(_ context.Context, _ storageAccount.ListFilter) ([]account.Account, error) {
	return m.accounts, nil
}

// mockSender implements email.Sender, capturing requests.
type mockSender struct {
	sent []emailAdapter.SendRequest
}

func (m *mockSender) Send(_ context.Context, req emailAdapter.SendRequest) (emailAdapter.SendResult, error) {
	m.sent = append(m.sent, req)
	return emailAdapter.SendResult{MessageID: "msg-001"}, nil
}

func TestExecuteSendReminders_DigestsDueToday(t *testing.T) {
	followUps := newMockFollowUpStore()
	followUps.items["f1"] = followup.FollowUp{
		ID: "f1", UserID: "u1", Name: "Alice Chen", Company: "Acme",
		ScheduleAt: fixedTime, // today
	}
	followUps.items["f2"] = followup.FollowUp{
		ID: "f2", UserID: "u1", Name: "Bob Riley", Company: "Corp",
		ScheduleAt: fixedTime.AddDate(0, 0, 2), // this week, not today
	}
	followUps.items["f3"] = followup.FollowUp{
		ID: "f3", UserID: "u2", Name: "Carol Diaz", Company: "Initech",
		ScheduleAt: fixedTime.AddDate(0, 0, 5),
	}

	accounts := &mockAccountLister{accounts: []account.Account{
		{ID: "u1", Email: "one@bizkit.test", Name: "One"},
		{ID: "u2", Email: "two@bizkit.test", Name: "Two"},
	}}
	sender := &mockSender{}

	sent, err := ExecuteSendReminders(context.Background(), ReminderDeps{
		AccountStore:  accounts,
		FollowUpStore: followUps,
		Sender:        sender,
		Now:           fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent != 1 {
		t.Fatalf("expected 1 digest sent, got %d", sent)
	}
	req := sender.sent[0]
	if len(req.To) != 1 || req.To[0] != "one@bizkit.test" {
		t.Errorf("expected digest to one@bizkit.test, got %v", req.To)
	}
	if !strings.Contains(req.HTML, "Alice Chen") {
		t.Error("expected due follow-up in digest body")
	}
	if strings.Contains(req.HTML, "Bob Riley") {
		t.Error("expected future follow-up excluded from digest")
	}
}

func TestExecuteSendReminders_NothingDue(t *testing.T) {
	followUps := newMockFollowUpStore()
	accounts := &mockAccountLister{accounts: []account.Account{
		{ID: "u1", Email: "one@bizkit.test", Name: "One"},
	}}
	sender := &mockSender{}

	sent, err := ExecuteSendReminders(context.Background(), ReminderDeps{
		AccountStore:  accounts,
		FollowUpStore: followUps,
		Sender:        sender,
		Now:           fixedNow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent != 0 || len(sender.sent) != 0 {
		t.Errorf("expected no digests, got sent=%d requests=%d", sent, len(sender.sent))
	}
}

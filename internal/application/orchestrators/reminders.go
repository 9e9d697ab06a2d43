package orchestrators

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	emailAdapter "bizkit/internal/adapters/email"
	storageAccount "bizkit/internal/adapters/storage/account"
	"bizkit/internal/domain/account"
	"bizkit/internal/domain/agenda"
	"bizkit/internal/domain/followup"
)

// ReminderDeps holds dependencies for SendReminders.
type ReminderDeps struct {
	AccountStore  AccountStoreForReminders
	FollowUpStore FollowUpStoreForOrchestrator
	Sender        emailAdapter.Sender
	Now           func() time.Time
	FromAddress   string // optional: provider default used when empty
}

// AccountStoreForReminders defines the store interface needed by SendReminders.
type AccountStoreForReminders interface {
	List(ctx context.Context, filter storageAccount.ListFilter) ([]account.Account, error)
}

// ExecuteSendReminders emails each account a digest of its follow-ups
// scheduled for today. Accounts with nothing due are skipped. A failure
// for one account does not stop the run.
// PRE: deps.Sender is non-nil
// POST: returns the number of digests sent
func ExecuteSendReminders(ctx context.Context, deps ReminderDeps) (int, error) {
	recipients, err := deps.AccountStore.List(ctx, storageAccount.ListFilter{})
	if err != nil {
		return 0, err
	}

	now := deps.Now()
	sent := 0
	for _, r := range recipients {
		due, err := dueToday(ctx, deps, r.ID, now)
		if err != nil {
			slog.Error("reminder_event", "event", "list_failed", "account_id", r.ID, "error", err)
			continue
		}
		if len(due) == 0 {
			continue
		}

		req := emailAdapter.SendRequest{
			To:      []string{r.Email},
			From:    deps.FromAddress,
			Subject: fmt.Sprintf("%d follow-up(s) due today", len(due)),
			HTML:    renderReminderHTML(r.Name, due),
		}
		if _, err := deps.Sender.Send(ctx, req); err != nil {
			slog.Error("reminder_event", "event", "send_failed", "account_id", r.ID, "error", err)
			continue
		}
		sent++
		slog.Info("reminder_event", "event", "digest_sent", "account_id", r.ID, "due_count", len(due))
	}

	return sent, nil
}

func dueToday(ctx context.Context, deps ReminderDeps, userID string, now time.Time) ([]followup.FollowUp, error) {
	items, err := deps.FollowUpStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var due []followup.FollowUp
	for _, f := range items {
		if f.Scheduled() && agenda.Classify(now, f.ScheduleAt) == agenda.BucketToday {
			due = append(due, f)
		}
	}
	return due, nil
}

func renderReminderHTML(name string, due []followup.FollowUp) string {
	var b strings.Builder
	b.WriteString("<p>Hi " + html.EscapeString(name) + ",</p>")
	b.WriteString("<p>You have follow-ups due today:</p><ul>")
	for _, f := range due {
		b.WriteString("<li><strong>" + html.EscapeString(f.Name) + "</strong>")
		if f.Company != "" {
			b.WriteString(" at " + html.EscapeString(f.Company))
		}
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

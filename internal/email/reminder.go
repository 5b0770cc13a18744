package email

import (
	"context"
	"fmt"

	"github.com/talentpipe/ops-api/internal/reminder"
)

// ReminderNotifier delivers fired reminders to the recruiter's inbox. It
// is one of the pluggable channels behind the scheduler's Notifier seam.
type ReminderNotifier struct {
	svc Service
	to  string
}

func NewReminderNotifier(svc Service, to string) *ReminderNotifier {
	return &ReminderNotifier{svc: svc, to: to}
}

func (n *ReminderNotifier) Notify(ctx context.Context, event reminder.Event) error {
	iv := event.Interview
	subject := fmt.Sprintf("Interview reminder: %s at %s", iv.CandidateName, iv.StartTime.Format("15:04"))
	body := fmt.Sprintf(
		"Reminder for %s.\n\nCandidate: %s\nRound: %s\nMode: %s\nStarts: %s\n",
		iv.RecruiterName, iv.CandidateName, iv.Round, iv.Mode,
		iv.StartTime.Format("Mon, 02 Jan 2006 15:04"),
	)
	return n.svc.SendCustom(ctx, n.to, subject, body)
}

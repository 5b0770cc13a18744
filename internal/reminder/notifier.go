package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/talentpipe/ops-api/internal/model"
	"github.com/talentpipe/ops-api/pkg/messaging"
)

// Event is one fired reminder: an interview entering a lead-time window.
type Event struct {
	Interview model.Interview
	Threshold time.Duration
	FireAt    time.Time
}

// Notifier delivers a fired reminder. Delivery mechanism (in-app feed,
// email, push) is the collaborator's concern; the scheduler owns only the
// scan and dedupe.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// FeedNotifier publishes reminders onto the notification channel so they
// land in the in-app feed.
type FeedNotifier struct {
	publisher messaging.Publisher
}

func NewFeedNotifier(publisher messaging.Publisher) *FeedNotifier {
	return &FeedNotifier{publisher: publisher}
}

func (n *FeedNotifier) Notify(ctx context.Context, event Event) error {
	iv := event.Interview
	payload := model.NotificationEvent{
		Kind:  model.NotificationReminder,
		Title: "Upcoming interview",
		Message: fmt.Sprintf("%s interview with %s starts at %s (in about %s).",
			iv.Round, iv.CandidateName, iv.StartTime.Format("15:04"), event.Threshold),
		RecruiterID: &iv.RecruiterID,
		CandidateID: &iv.CandidateID,
		InterviewID: &iv.ID,
	}
	return n.publisher.Publish(ctx, messaging.ChannelNotifications, payload)
}

// FanoutNotifier delivers to every channel, returning the first error
// after attempting all of them.
type FanoutNotifier struct {
	notifiers []Notifier
}

func NewFanoutNotifier(notifiers ...Notifier) *FanoutNotifier {
	return &FanoutNotifier{notifiers: notifiers}
}

func (n *FanoutNotifier) Notify(ctx context.Context, event Event) error {
	var firstErr error
	for _, notifier := range n.notifiers {
		if err := notifier.Notify(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

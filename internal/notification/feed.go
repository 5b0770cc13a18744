package notification

import (
	"context"
	"encoding/json"

	"github.com/talentpipe/ops-api/internal/model"
	"github.com/talentpipe/ops-api/pkg/logger"
	"github.com/talentpipe/ops-api/pkg/messaging"
)

// Feed subscribes the store to the broker's notification channel. The
// store itself never cares whether events came from a write path, a timer
// or a push channel; this is the only intake seam.
type Feed struct {
	broker messaging.Broker
	store  *Store
	logger *logger.Logger
}

func NewFeed(broker messaging.Broker, store *Store, logger *logger.Logger) *Feed {
	return &Feed{broker: broker, store: store, logger: logger}
}

// Start consumes events until ctx is cancelled. A malformed event is
// dropped with a log line, never crashes the feed.
func (f *Feed) Start(ctx context.Context) error {
	msgs, err := f.broker.Subscribe(ctx, messaging.ChannelNotifications)
	if err != nil {
		return err
	}

	go func() {
		for raw := range msgs {
			var event model.NotificationEvent
			if err := json.Unmarshal(raw, &event); err != nil {
				f.logger.Error(err, "dropping malformed notification event")
				continue
			}
			if _, err := f.store.Add(ctx, event); err != nil {
				f.logger.Error(err, "failed to store notification event", "kind", string(event.Kind))
			}
		}
	}()
	return nil
}

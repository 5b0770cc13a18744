package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentpipe/ops-api/internal/model"
	"github.com/talentpipe/ops-api/pkg/messaging"
)

func TestFeedDeliversPublishedEvents(t *testing.T) {
	broker := messaging.NewLocalBroker()
	defer broker.Close()

	s, _ := newFileStore(t)
	feed := NewFeed(broker, s, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, feed.Start(ctx))

	event := model.NotificationEvent{
		Kind:    model.NotificationInterview,
		Title:   "Interview scheduled",
		Message: "Round 1 with Anita Rao",
	}
	require.NoError(t, broker.Publish(ctx, messaging.ChannelNotifications, event))

	require.Eventually(t, func() bool {
		return len(s.List()) == 1
	}, time.Second, 5*time.Millisecond)

	got := s.List()[0]
	assert.Equal(t, model.NotificationInterview, got.Kind)
	assert.Equal(t, "Interview scheduled", got.Title)
	assert.False(t, got.Read)
}

func TestFeedDropsMalformedEvents(t *testing.T) {
	broker := messaging.NewLocalBroker()
	defer broker.Close()

	s, _ := newFileStore(t)
	feed := NewFeed(broker, s, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, feed.Start(ctx))

	// A JSON scalar is not an event shape; it must be dropped, and the feed
	// must keep consuming afterwards.
	require.NoError(t, broker.Publish(ctx, messaging.ChannelNotifications, "not an event"))
	require.NoError(t, broker.Publish(ctx, messaging.ChannelNotifications, model.NotificationEvent{
		Kind: model.NotificationSystem, Title: "still alive",
	}))

	require.Eventually(t, func() bool {
		return len(s.List()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "still alive", s.List()[0].Title)
}

func TestFeedIgnoresOtherChannels(t *testing.T) {
	broker := messaging.NewLocalBroker()
	defer broker.Close()

	s, _ := newFileStore(t)
	feed := NewFeed(broker, s, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, feed.Start(ctx))

	require.NoError(t, broker.Publish(ctx, "audit", model.NotificationEvent{Kind: model.NotificationSystem}))

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, s.List())
}

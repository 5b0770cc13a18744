package messaging

import (
	"context"
)

// ChannelNotifications carries domain events destined for the notification
// feed.
const ChannelNotifications = "notifications"

// Broker defines the interface for message brokers. The notification feed
// is agnostic to which implementation carries its events: a Redis channel
// in multi-process deployments, the in-proc broker otherwise.
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Publisher is the narrow write side of a Broker.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) error
}

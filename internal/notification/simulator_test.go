package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/talentpipe/ops-api/pkg/messaging"
)

func TestSimulatorPublishesWithCertainProbability(t *testing.T) {
	broker := messaging.NewLocalBroker()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	msgs, err := broker.Subscribe(ctx, messaging.ChannelNotifications)
	require.NoError(t, err)

	sim := NewSimulator(SimulatorConfig{Interval: 5 * time.Millisecond, Probability: 1}, broker, testLogger())
	go sim.Start(ctx)

	select {
	case raw := <-msgs:
		require.NotEmpty(t, raw)
	case <-time.After(time.Second):
		t.Fatal("no simulated event published")
	}
}

func TestSimulatorZeroProbabilityNeverPublishes(t *testing.T) {
	broker := messaging.NewLocalBroker()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	msgs, err := broker.Subscribe(ctx, messaging.ChannelNotifications)
	require.NoError(t, err)

	sim := NewSimulator(SimulatorConfig{Interval: time.Millisecond, Probability: 0}, broker, testLogger())
	go sim.Start(ctx)

	select {
	case raw := <-msgs:
		t.Fatalf("unexpected event: %s", raw)
	case <-time.After(50 * time.Millisecond):
	}
}

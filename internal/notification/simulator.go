package notification

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/talentpipe/ops-api/internal/model"
	"github.com/talentpipe/ops-api/pkg/logger"
	"github.com/talentpipe/ops-api/pkg/messaging"
)

// Simulator is an optional synthetic event source for demo environments:
// a long-period timer that occasionally publishes a plausible domain event
// to the broker. It is just another publisher; the store has no knowledge
// of it and nothing depends on it being enabled.
type Simulator struct {
	publisher   messaging.Publisher
	logger      *logger.Logger
	interval    time.Duration
	probability float64
	rng         *rand.Rand
}

type SimulatorConfig struct {
	Interval    time.Duration `yaml:"interval"`
	Probability float64       `yaml:"probability"`
}

func NewSimulator(cfg SimulatorConfig, publisher messaging.Publisher, logger *logger.Logger) *Simulator {
	return &Simulator{
		publisher:   publisher,
		logger:      logger,
		interval:    cfg.Interval,
		probability: cfg.Probability,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

var sampleEvents = []model.NotificationEvent{
	{Kind: model.NotificationSubmission, Title: "New submission", Message: "A candidate was submitted to a requirement."},
	{Kind: model.NotificationStatusChange, Title: "Status changed", Message: "A candidate moved to a new pipeline stage."},
	{Kind: model.NotificationInterview, Title: "Interview scheduled", Message: "An interview slot was booked."},
}

// Start ticks until ctx is cancelled. Ticks never overlap: each pass is a
// single synchronous publish attempt.
func (s *Simulator) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("starting simulated activity feed",
		"interval", s.interval.String(), "probability", fmt.Sprintf("%.2f", s.probability))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("stopping simulated activity feed")
			return
		case <-ticker.C:
			if s.rng.Float64() >= s.probability {
				continue
			}
			event := sampleEvents[s.rng.Intn(len(sampleEvents))]
			if err := s.publisher.Publish(ctx, messaging.ChannelNotifications, event); err != nil {
				s.logger.Error(err, "failed to publish simulated event")
			}
		}
	}
}

// Package reminder scans scheduled interviews on a fixed cadence and fires
// a one-time alert per (interview, lead-time threshold) pair.
package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/talentpipe/ops-api/internal/model"
	"github.com/talentpipe/ops-api/pkg/logger"
	"github.com/talentpipe/ops-api/pkg/metrics"
)

// InterviewSource yields the live interview set. Each scan reads it fresh,
// so deletions and reschedules take effect on the next tick.
type InterviewSource interface {
	Interviews() []model.Interview
}

type Config struct {
	Cadence    time.Duration   `yaml:"cadence"`
	Thresholds []time.Duration `yaml:"thresholds"`
	Band       time.Duration   `yaml:"band"`
	// CatchUp fires a threshold late when a tick lands past its band but
	// before the interview starts, instead of silently dropping it.
	CatchUp bool `yaml:"catch_up"`
}

type pairKey struct {
	interview uuid.UUID
	threshold time.Duration
}

// pairState tracks where a (interview, threshold) pair sits between
// reschedules: the start time it was fired for, so a moved interview gets
// a fresh pending state.
type pairState struct {
	firedFor time.Time
}

type Scheduler struct {
	source   InterviewSource
	notifier Notifier
	config   Config
	logger   *logger.Logger
	metrics  *metrics.Metrics
	now      func() time.Time

	scanning sync.Mutex

	mu       sync.Mutex
	fired    map[pairKey]pairState
	reported map[uuid.UUID]struct{}
}

func NewScheduler(
	source InterviewSource,
	notifier Notifier,
	config Config,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *Scheduler {
	if config.Cadence <= 0 {
		panic("Cadence must be greater than 0")
	}
	if len(config.Thresholds) == 0 {
		panic("at least one threshold is required")
	}
	if config.Band <= 0 {
		panic("Band must be greater than 0")
	}
	// The tick must be finer than the tolerance band or an in-band moment
	// can fall entirely between two samples.
	if config.Cadence > config.Band {
		panic("Cadence must not exceed Band")
	}

	return &Scheduler{
		source:   source,
		notifier: notifier,
		config:   config,
		logger:   logger,
		metrics:  metrics,
		now:      time.Now,
		fired:    make(map[pairKey]pairState),
		reported: make(map[uuid.UUID]struct{}),
	}
}

// Start runs the scan loop until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.config.Cadence)
	defer ticker.Stop()

	s.logger.Info("starting reminder scheduler",
		"cadence", s.config.Cadence.String(), "thresholds", fmt.Sprintf("%v", s.config.Thresholds))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("stopping reminder scheduler")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick runs one scan. If the previous scan is still running the tick is
// skipped, not queued.
func (s *Scheduler) Tick(ctx context.Context) {
	if !s.scanning.TryLock() {
		s.metrics.ReminderScansSkipped.Inc()
		return
	}
	defer s.scanning.Unlock()

	timer := prometheus.NewTimer(s.metrics.ReminderScanLatency)
	defer timer.ObserveDuration()

	s.scan(ctx, s.now())
	s.metrics.ReminderScans.Inc()
}

func (s *Scheduler) scan(ctx context.Context, now time.Time) {
	interviews := s.source.Interviews()

	live := make(map[uuid.UUID]struct{}, len(interviews))
	for _, iv := range interviews {
		live[iv.ID] = struct{}{}

		if err := s.evaluate(ctx, iv, now); err != nil {
			s.metrics.ReminderEvalErrors.Inc()
			s.reportOnce(iv.ID, err)
		}
	}
	s.prune(live)
}

// evaluate checks every configured threshold for one interview. A problem
// with one interview never aborts the scan of the rest.
func (s *Scheduler) evaluate(ctx context.Context, iv model.Interview, now time.Time) error {
	if iv.StartTime.IsZero() {
		return fmt.Errorf("interview %s has no start time", iv.ID)
	}
	if !iv.StartTime.After(now) {
		return nil
	}

	for _, threshold := range s.config.Thresholds {
		fireAt := iv.StartTime.Add(-threshold)
		if !s.due(now, fireAt, iv.StartTime) {
			continue
		}

		key := pairKey{interview: iv.ID, threshold: threshold}
		s.mu.Lock()
		state, fired := s.fired[key]
		alreadyFired := fired && state.firedFor.Equal(iv.StartTime)
		if !alreadyFired {
			// Mark before delivering: at-most-once beats retry here.
			s.fired[key] = pairState{firedFor: iv.StartTime}
		}
		s.mu.Unlock()
		if alreadyFired {
			continue
		}

		s.metrics.RemindersFired.Inc()
		s.logger.Info("reminder fired",
			"interview_id", iv.ID.String(),
			"candidate", iv.CandidateName,
			"threshold", threshold.String())

		if err := s.notifier.Notify(ctx, Event{Interview: iv, Threshold: threshold, FireAt: fireAt}); err != nil {
			s.logger.Error(err, "reminder delivery failed", "interview_id", iv.ID.String())
		}
	}
	return nil
}

// due reports whether now has entered the firing window for fireAt. In
// band mode that is ±Band around fireAt; with catch-up enabled a sample
// that missed the band entirely (suspended process, slow timer) still
// fires as long as the interview has not started.
func (s *Scheduler) due(now, fireAt, start time.Time) bool {
	if now.Before(fireAt.Add(-s.config.Band)) {
		return false
	}
	if s.config.CatchUp {
		return now.Before(start)
	}
	return !now.After(fireAt.Add(s.config.Band))
}

// prune discards dedupe and error-report state for interviews that were
// deleted or no longer appear in the snapshot, so stale reminders can
// never fire and a re-created interview starts pending again.
func (s *Scheduler) prune(live map[uuid.UUID]struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.fired {
		if _, ok := live[key.interview]; !ok {
			delete(s.fired, key)
		}
	}
	for id := range s.reported {
		if _, ok := live[id]; !ok {
			delete(s.reported, id)
		}
	}
}

func (s *Scheduler) reportOnce(id uuid.UUID, err error) {
	s.mu.Lock()
	_, seen := s.reported[id]
	if !seen {
		s.reported[id] = struct{}{}
	}
	s.mu.Unlock()
	if !seen {
		s.logger.Error(err, "skipping interview in reminder scan", "interview_id", id.String())
	}
}

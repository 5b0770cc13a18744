package reminder

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentpipe/ops-api/internal/model"
	"github.com/talentpipe/ops-api/pkg/logger"
	"github.com/talentpipe/ops-api/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("test_reminder")

func testLogger() *logger.Logger {
	return logger.NewLogger(&logger.Config{Level: logger.FatalLevel, Output: io.Discard})
}

type fakeSource struct {
	mu         sync.Mutex
	interviews []model.Interview
}

func (s *fakeSource) Interviews() []model.Interview {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Interview, len(s.interviews))
	copy(out, s.interviews)
	return out
}

func (s *fakeSource) set(interviews ...model.Interview) {
	s.mu.Lock()
	s.interviews = interviews
	s.mu.Unlock()
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
	err    error
	block  chan struct{}
}

func (n *recordingNotifier) Notify(_ context.Context, event Event) error {
	if n.block != nil {
		<-n.block
	}
	n.mu.Lock()
	n.events = append(n.events, event)
	n.mu.Unlock()
	return n.err
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

var baseTime = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func interviewAt(start time.Time) model.Interview {
	return model.Interview{
		ID:            uuid.New(),
		CandidateID:   uuid.New(),
		CandidateName: "Anita Rao",
		RecruiterID:   uuid.New(),
		RecruiterName: "Alice",
		StartTime:     start,
		Round:         "Round 1",
		Mode:          model.InterviewModeVideo,
	}
}

func newTestScheduler(src InterviewSource, n Notifier, cfg Config) *Scheduler {
	return NewScheduler(src, n, cfg, testLogger(), testMetrics)
}

func defaultConfig() Config {
	return Config{
		Cadence:    5 * time.Second,
		Thresholds: []time.Duration{30 * time.Minute},
		Band:       time.Minute,
	}
}

// tickAt runs one scan with the scheduler clock pinned to now.
func tickAt(s *Scheduler, now time.Time) {
	s.now = func() time.Time { return now }
	s.Tick(context.Background())
}

func TestFiresOncePerThresholdAcrossRepeatedTicks(t *testing.T) {
	src := &fakeSource{}
	notif := &recordingNotifier{}
	s := newTestScheduler(src, notif, defaultConfig())

	iv := interviewAt(baseTime.Add(30 * time.Minute))
	src.set(iv)

	// Many ticks inside the band, a reminder still fires exactly once.
	for i := 0; i < 10; i++ {
		tickAt(s, baseTime.Add(time.Duration(i)*5*time.Second))
	}

	require.Equal(t, 1, notif.count())
	got := notif.events[0]
	assert.Equal(t, iv.ID, got.Interview.ID)
	assert.Equal(t, 30*time.Minute, got.Threshold)
	assert.Equal(t, iv.StartTime.Add(-30*time.Minute), got.FireAt)
}

func TestNoFireBeforeBand(t *testing.T) {
	src := &fakeSource{}
	notif := &recordingNotifier{}
	s := newTestScheduler(src, notif, defaultConfig())

	src.set(interviewAt(baseTime.Add(2 * time.Hour)))
	tickAt(s, baseTime)

	assert.Zero(t, notif.count())
}

func TestEachThresholdFiresIndependently(t *testing.T) {
	src := &fakeSource{}
	notif := &recordingNotifier{}
	cfg := defaultConfig()
	cfg.Thresholds = []time.Duration{time.Hour, 30 * time.Minute}
	s := newTestScheduler(src, notif, cfg)

	iv := interviewAt(baseTime.Add(2 * time.Hour))
	src.set(iv)

	tickAt(s, baseTime.Add(time.Hour)) // one hour out
	require.Equal(t, 1, notif.count())
	assert.Equal(t, time.Hour, notif.events[0].Threshold)

	tickAt(s, baseTime.Add(90*time.Minute)) // thirty minutes out
	require.Equal(t, 2, notif.count())
	assert.Equal(t, 30*time.Minute, notif.events[1].Threshold)
}

func TestCatchUpFiresMissedThresholdLate(t *testing.T) {
	src := &fakeSource{}
	notif := &recordingNotifier{}
	cfg := defaultConfig()
	cfg.CatchUp = true
	s := newTestScheduler(src, notif, cfg)

	iv := interviewAt(baseTime.Add(30 * time.Minute))
	src.set(iv)

	// First sample lands well past the band but before the start.
	tickAt(s, baseTime.Add(20*time.Minute))
	require.Equal(t, 1, notif.count())

	// Still once.
	tickAt(s, baseTime.Add(21*time.Minute))
	assert.Equal(t, 1, notif.count())
}

func TestWithoutCatchUpMissedBandIsDropped(t *testing.T) {
	src := &fakeSource{}
	notif := &recordingNotifier{}
	s := newTestScheduler(src, notif, defaultConfig())

	src.set(interviewAt(baseTime.Add(30 * time.Minute)))
	tickAt(s, baseTime.Add(20*time.Minute))

	assert.Zero(t, notif.count())
}

func TestStartedInterviewNeverFires(t *testing.T) {
	src := &fakeSource{}
	notif := &recordingNotifier{}
	cfg := defaultConfig()
	cfg.CatchUp = true
	s := newTestScheduler(src, notif, cfg)

	src.set(interviewAt(baseTime))
	tickAt(s, baseTime.Add(time.Minute))

	assert.Zero(t, notif.count())
}

func TestRescheduleReArmsThreshold(t *testing.T) {
	src := &fakeSource{}
	notif := &recordingNotifier{}
	s := newTestScheduler(src, notif, defaultConfig())

	iv := interviewAt(baseTime.Add(30 * time.Minute))
	src.set(iv)
	tickAt(s, baseTime)
	require.Equal(t, 1, notif.count())

	// Moved out two hours: the same pair becomes pending again.
	iv.StartTime = baseTime.Add(2*time.Hour + 30*time.Minute)
	src.set(iv)
	tickAt(s, baseTime.Add(2*time.Hour))

	require.Equal(t, 2, notif.count())
	assert.Equal(t, iv.StartTime, notif.events[1].Interview.StartTime)
}

func TestDeletedInterviewStateIsPruned(t *testing.T) {
	src := &fakeSource{}
	notif := &recordingNotifier{}
	s := newTestScheduler(src, notif, defaultConfig())

	iv := interviewAt(baseTime.Add(30 * time.Minute))
	src.set(iv)
	tickAt(s, baseTime)
	require.Equal(t, 1, notif.count())

	src.set()
	tickAt(s, baseTime.Add(5*time.Second))

	s.mu.Lock()
	assert.Empty(t, s.fired)
	s.mu.Unlock()
}

func TestZeroStartTimeSkipsInterviewNotScan(t *testing.T) {
	src := &fakeSource{}
	notif := &recordingNotifier{}
	s := newTestScheduler(src, notif, defaultConfig())

	broken := model.Interview{ID: uuid.New(), CandidateName: "No Slot"}
	good := interviewAt(baseTime.Add(30 * time.Minute))
	src.set(broken, good)

	tickAt(s, baseTime)

	// The good interview still fires.
	require.Equal(t, 1, notif.count())
	assert.Equal(t, good.ID, notif.events[0].Interview.ID)

	s.mu.Lock()
	_, reported := s.reported[broken.ID]
	s.mu.Unlock()
	assert.True(t, reported)
}

func TestOverlappingTickIsSkipped(t *testing.T) {
	src := &fakeSource{}
	notif := &recordingNotifier{block: make(chan struct{})}
	s := newTestScheduler(src, notif, defaultConfig())

	src.set(interviewAt(baseTime.Add(30 * time.Minute)))
	s.now = func() time.Time { return baseTime }

	done := make(chan struct{})
	go func() {
		s.Tick(context.Background())
		close(done)
	}()

	// Wait until the first scan is blocked inside Notify.
	require.Eventually(t, func() bool {
		locked := s.scanning.TryLock()
		if locked {
			s.scanning.Unlock()
		}
		return !locked
	}, time.Second, time.Millisecond)

	s.Tick(context.Background()) // skipped, returns immediately

	close(notif.block)
	<-done
	assert.Equal(t, 1, notif.count())
}

func TestDeliveryFailureStillCountsAsFired(t *testing.T) {
	src := &fakeSource{}
	notif := &recordingNotifier{err: context.DeadlineExceeded}
	s := newTestScheduler(src, notif, defaultConfig())

	src.set(interviewAt(baseTime.Add(30 * time.Minute)))
	tickAt(s, baseTime)
	tickAt(s, baseTime.Add(5*time.Second))

	// At-most-once: a failed delivery is not retried.
	assert.Equal(t, 1, notif.count())
}

func TestNewSchedulerRejectsInvalidConfig(t *testing.T) {
	src := &fakeSource{}
	notif := &recordingNotifier{}

	cases := []struct {
		name string
		cfg  Config
	}{
		{"zero cadence", Config{Thresholds: []time.Duration{time.Minute}, Band: time.Minute}},
		{"no thresholds", Config{Cadence: time.Second, Band: time.Minute}},
		{"zero band", Config{Cadence: time.Second, Thresholds: []time.Duration{time.Minute}}},
		{"cadence coarser than band", Config{
			Cadence: 2 * time.Minute, Thresholds: []time.Duration{time.Hour}, Band: time.Minute,
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Panics(t, func() {
				NewScheduler(src, notif, tc.cfg, testLogger(), testMetrics)
			})
		})
	}
}

func TestFanoutNotifierAttemptsAllChannels(t *testing.T) {
	failing := &recordingNotifier{err: context.DeadlineExceeded}
	ok := &recordingNotifier{}
	fanout := NewFanoutNotifier(failing, ok)

	err := fanout.Notify(context.Background(), Event{Interview: interviewAt(baseTime)})
	assert.Error(t, err)
	assert.Equal(t, 1, failing.count())
	assert.Equal(t, 1, ok.count())
}

package snapshot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/talentpipe/ops-api/internal/model"
	"github.com/talentpipe/ops-api/internal/repository"
	"github.com/talentpipe/ops-api/pkg/logger"
	"github.com/talentpipe/ops-api/pkg/messaging"
	"github.com/talentpipe/ops-api/pkg/metrics"
)

// Snapshot is one authoritative read of all source collections. A refresh
// fully replaces the previous snapshot; derived state is recomputed from it,
// never maintained incrementally.
type Snapshot struct {
	Version      int64
	FetchedAt    time.Time
	Candidates   []model.Candidate
	Requirements []model.Requirement
	Clients      []model.Client
	Interviews   []model.Interview

	// Missing lists collections whose fetch failed this pass; they are
	// treated as empty rather than blocking the rest.
	Missing []model.EntityKind
}

// Store owns the current snapshot. Refreshes are triggered by explicit user
// action or a successful write, not by a timer.
type Store struct {
	candidates   repository.CandidateRepository
	requirements repository.RequirementRepository
	clients      repository.ClientRepository
	interviews   repository.InterviewRepository
	publisher    messaging.Publisher
	logger       *logger.Logger
	metrics      *metrics.Metrics

	mu      sync.RWMutex
	current *Snapshot
	version int64
	closed  bool
}

func NewStore(
	candidates repository.CandidateRepository,
	requirements repository.RequirementRepository,
	clients repository.ClientRepository,
	interviews repository.InterviewRepository,
	publisher messaging.Publisher,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *Store {
	return &Store{
		candidates:   candidates,
		requirements: requirements,
		clients:      clients,
		interviews:   interviews,
		publisher:    publisher,
		logger:       logger,
		metrics:      metrics,
		current:      &Snapshot{FetchedAt: time.Now()},
	}
}

// Current returns the snapshot as of the last successful refresh. The
// initial snapshot is empty until the first Refresh completes.
func (s *Store) Current() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Interviews returns the interview collection from the current snapshot.
// The reminder scheduler reads this fresh on every scan.
func (s *Store) Interviews() []model.Interview {
	return s.Current().Interviews
}

// Refresh reads every collection and installs the result as the new current
// snapshot. A failed fetch of one collection leaves that collection empty
// and is surfaced once as a non-fatal notice; the others still refresh.
// A refresh that completes after Close is discarded.
func (s *Store) Refresh(ctx context.Context) (*Snapshot, error) {
	next := &Snapshot{FetchedAt: time.Now()}

	if cands, err := s.candidates.List(ctx); err != nil {
		s.fetchFailed(ctx, model.EntityCandidate, err, next)
	} else {
		next.Candidates = cands
	}
	if reqs, err := s.requirements.List(ctx); err != nil {
		s.fetchFailed(ctx, model.EntityRequirement, err, next)
	} else {
		next.Requirements = reqs
	}
	if clients, err := s.clients.List(ctx); err != nil {
		s.fetchFailed(ctx, model.EntityClient, err, next)
	} else {
		next.Clients = clients
	}
	if ivs, err := s.interviews.List(ctx); err != nil {
		s.fetchFailed(ctx, model.EntityInterview, err, next)
	} else {
		next.Interviews = ivs
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.metrics.SnapshotRefreshes.WithLabelValues("discarded").Inc()
		return nil, fmt.Errorf("snapshot store closed, refresh discarded")
	}
	s.version++
	next.Version = s.version
	s.current = next
	s.mu.Unlock()

	if len(next.Missing) > 0 {
		s.metrics.SnapshotRefreshes.WithLabelValues("partial").Inc()
	} else {
		s.metrics.SnapshotRefreshes.WithLabelValues("success").Inc()
	}
	s.metrics.SnapshotRecords.WithLabelValues(string(model.EntityCandidate)).Set(float64(len(next.Candidates)))
	s.metrics.SnapshotRecords.WithLabelValues(string(model.EntityRequirement)).Set(float64(len(next.Requirements)))
	s.metrics.SnapshotRecords.WithLabelValues(string(model.EntityClient)).Set(float64(len(next.Clients)))
	s.metrics.SnapshotRecords.WithLabelValues(string(model.EntityInterview)).Set(float64(len(next.Interviews)))

	return next, nil
}

// Close marks the store torn down; in-flight refreshes complete but their
// results are discarded.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Store) fetchFailed(ctx context.Context, kind model.EntityKind, err error, next *Snapshot) {
	next.Missing = append(next.Missing, kind)
	s.metrics.SnapshotFetchErrors.WithLabelValues(string(kind)).Inc()
	s.logger.Error(err, "collection fetch failed", "kind", string(kind))

	if s.publisher == nil {
		return
	}
	event := model.NotificationEvent{
		Kind:    model.NotificationSystem,
		Title:   "Data refresh incomplete",
		Message: fmt.Sprintf("Could not load %ss; dashboard numbers exclude them until the next refresh.", kind),
	}
	if pubErr := s.publisher.Publish(ctx, messaging.ChannelNotifications, event); pubErr != nil {
		s.logger.Error(pubErr, "failed to publish fetch-failure notice")
	}
}

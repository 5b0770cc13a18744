// Package notification owns the persisted feed of domain events: an
// append-only log with a per-entry read flag, most-recent-first.
package notification

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/talentpipe/ops-api/internal/model"
	apperrors "github.com/talentpipe/ops-api/pkg/errors"
	"github.com/talentpipe/ops-api/pkg/logger"
	"github.com/talentpipe/ops-api/pkg/metrics"
)

// Store serializes every mutation under one mutex and persists the full
// log before returning, so the persisted form is always consistent with
// memory and concurrent UI/timer callers are applied as discrete ordered
// operations.
type Store struct {
	log     Log
	logger  *logger.Logger
	metrics *metrics.Metrics

	mu    sync.Mutex
	items []model.Notification // head = most recent
}

func NewStore(log Log, logger *logger.Logger, metrics *metrics.Metrics) *Store {
	return &Store{log: log, logger: logger, metrics: metrics}
}

// Init loads the persisted log once at startup. A corrupt log resets to
// empty rather than failing; any other load error is fatal to the caller.
func (s *Store) Init(ctx context.Context) error {
	items, err := s.log.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrCorrupt) {
			return err
		}
		s.logger.Error(err, "resetting corrupt notification log")
		items = nil
		if saveErr := s.log.Save(ctx, nil); saveErr != nil {
			return saveErr
		}
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	s.metrics.UnreadGauge.Set(float64(s.UnreadCount()))
	return nil
}

// Add assigns identity and timestamp and inserts at the head, unread.
func (s *Store) Add(ctx context.Context, event model.NotificationEvent) (*model.Notification, error) {
	n := model.Notification{
		ID:            uuid.New(),
		Kind:          event.Kind,
		Title:         event.Title,
		Message:       event.Message,
		Timestamp:     time.Now().UTC(),
		Read:          false,
		RecruiterID:   event.RecruiterID,
		CandidateID:   event.CandidateID,
		RequirementID: event.RequirementID,
		InterviewID:   event.InterviewID,
	}

	err := s.mutate(ctx, "add", func(items []model.Notification) []model.Notification {
		return append([]model.Notification{n}, items...)
	})
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// List returns the log most-recent-first.
func (s *Store) List() []model.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Notification, len(s.items))
	copy(out, s.items)
	return out
}

// UnreadCount is derived, never stored.
func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, item := range s.items {
		if !item.Read {
			n++
		}
	}
	return n
}

// MarkRead flips one entry to read. Marking an already-read entry is a
// no-op; an absent id is reported.
func (s *Store) MarkRead(ctx context.Context, id uuid.UUID) error {
	found := false
	err := s.mutate(ctx, "mark_read", func(items []model.Notification) []model.Notification {
		for i := range items {
			if items[i].ID == id {
				found = true
				items[i].Read = true
				break
			}
		}
		return items
	})
	if err != nil {
		return err
	}
	if !found {
		return apperrors.NotFound("notification", nil)
	}
	return nil
}

// MarkAllRead sets every entry to read in one operation.
func (s *Store) MarkAllRead(ctx context.Context) error {
	return s.mutate(ctx, "mark_all_read", func(items []model.Notification) []model.Notification {
		for i := range items {
			items[i].Read = true
		}
		return items
	})
}

// Delete removes one entry; absent ids are a no-op.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, "delete", func(items []model.Notification) []model.Notification {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...)
			}
		}
		return items
	})
}

// ClearAll empties the log.
func (s *Store) ClearAll(ctx context.Context) error {
	return s.mutate(ctx, "clear_all", func([]model.Notification) []model.Notification {
		return nil
	})
}

// mutate applies fn to a working copy, persists the result, and only then
// commits it to memory. A failed save leaves the prior state intact, so
// memory and the persisted log never diverge.
func (s *Store) mutate(ctx context.Context, op string, fn func([]model.Notification) []model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.Notification, len(s.items))
	copy(next, s.items)
	next = fn(next)

	if err := s.log.Save(ctx, next); err != nil {
		s.logger.Error(err, "notification mutation not persisted", "op", op)
		return err
	}
	s.items = next

	s.metrics.NotificationOps.WithLabelValues(op).Inc()
	unread := 0
	for _, item := range s.items {
		if !item.Read {
			unread++
		}
	}
	s.metrics.UnreadGauge.Set(float64(unread))
	return nil
}

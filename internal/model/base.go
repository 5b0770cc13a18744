package model

import (
	"time"
)

// EntityKind identifies one of the source collections the engine consumes.
type EntityKind string

const (
	EntityCandidate   EntityKind = "candidate"
	EntityRequirement EntityKind = "requirement"
	EntityClient      EntityKind = "client"
	EntityInterview   EntityKind = "interview"
)

func (k EntityKind) Valid() bool {
	switch k {
	case EntityCandidate, EntityRequirement, EntityClient, EntityInterview:
		return true
	}
	return false
}

// Window is an optional [start,end] date bound applied uniformly to all
// metrics in one aggregation pass. A nil bound means unbounded on that side.
type Window struct {
	Start *time.Time `json:"start,omitempty" form:"start" time_format:"2006-01-02"`
	End   *time.Time `json:"end,omitempty" form:"end" time_format:"2006-01-02"`
}

// Bounded reports whether either side of the window is set.
func (w Window) Bounded() bool {
	return w.Start != nil || w.End != nil
}

// Contains reports whether t falls inside the window. A record with no date
// is included only while the window is unbounded; once a bound is set,
// metrics that need the date exclude it.
func (w Window) Contains(t *time.Time) bool {
	if t == nil {
		return !w.Bounded()
	}
	if w.Start != nil && t.Before(*w.Start) {
		return false
	}
	if w.End != nil && t.After(*w.End) {
		return false
	}
	return true
}

// Key renders a stable identity for the window, used in cache keys.
func (w Window) Key() string {
	const layout = "2006-01-02T15:04:05"
	s, e := "-", "-"
	if w.Start != nil {
		s = w.Start.Format(layout)
	}
	if w.End != nil {
		e = w.End.Format(layout)
	}
	return s + ".." + e
}

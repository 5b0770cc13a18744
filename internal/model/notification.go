package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationKind string

const (
	NotificationSubmission   NotificationKind = "submission"
	NotificationStatusChange NotificationKind = "status_change"
	NotificationInterview    NotificationKind = "interview_scheduled"
	NotificationReminder     NotificationKind = "interview_reminder"
	NotificationAssignment   NotificationKind = "requirement_assigned"
	NotificationSystem       NotificationKind = "system"
)

// Notification is one entry in the append-only feed. Only the Read flag is
// mutable after creation; everything else is fixed at add time.
type Notification struct {
	ID            uuid.UUID        `json:"id"`
	Kind          NotificationKind `json:"kind"`
	Title         string           `json:"title"`
	Message       string           `json:"message"`
	Timestamp     time.Time        `json:"timestamp"`
	Read          bool             `json:"read"`
	RecruiterID   *uuid.UUID       `json:"recruiter_id,omitempty"`
	CandidateID   *uuid.UUID       `json:"candidate_id,omitempty"`
	RequirementID *uuid.UUID       `json:"requirement_id,omitempty"`
	InterviewID   *uuid.UUID       `json:"interview_id,omitempty"`
}

// NotificationEvent is the wire form of a domain event feeding the store,
// published on the broker by writers, the reminder scheduler or the
// simulated feed.
type NotificationEvent struct {
	Kind          NotificationKind `json:"kind"`
	Title         string           `json:"title"`
	Message       string           `json:"message"`
	RecruiterID   *uuid.UUID       `json:"recruiter_id,omitempty"`
	CandidateID   *uuid.UUID       `json:"candidate_id,omitempty"`
	RequirementID *uuid.UUID       `json:"requirement_id,omitempty"`
	InterviewID   *uuid.UUID       `json:"interview_id,omitempty"`
}

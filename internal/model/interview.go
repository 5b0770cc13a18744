package model

import (
	"time"

	"github.com/google/uuid"
)

type InterviewMode string

const (
	InterviewModeOnsite InterviewMode = "onsite"
	InterviewModeVideo  InterviewMode = "video"
	InterviewModePhone  InterviewMode = "phone"
)

// Interview is a scheduled interview slot, the source of reminder
// evaluation. The engine never mutates interviews; they arrive as part of
// each collection snapshot.
type Interview struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	CandidateID   uuid.UUID     `json:"candidate_id" db:"candidate_id"`
	CandidateName string        `json:"candidate_name" db:"candidate_name"`
	RecruiterID   uuid.UUID     `json:"recruiter_id" db:"recruiter_id"`
	RecruiterName string        `json:"recruiter_name" db:"recruiter_name"`
	StartTime     time.Time     `json:"start_time" db:"start_time"`
	Round         string        `json:"round" db:"round"`
	Mode          InterviewMode `json:"mode" db:"mode"`
	CreatedAt     *time.Time    `json:"created_at,omitempty" db:"created_at"`
}

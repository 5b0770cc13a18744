package model

import (
	"time"

	"github.com/google/uuid"
)

// TATBucket is the urgency classification of a requirement's turnaround
// deadline. Buckets are mutually exclusive; requirements without a deadline
// are Unknown and excluded from the expired/urgent/normal counts.
type TATBucket string

const (
	TATExpired TATBucket = "expired"
	TATUrgent  TATBucket = "urgent"
	TATNormal  TATBucket = "normal"
	TATUnknown TATBucket = "unknown"
)

func (b TATBucket) Valid() bool {
	switch b {
	case TATExpired, TATUrgent, TATNormal, TATUnknown:
		return true
	}
	return false
}

// urgentWindowDays: a deadline within this many calendar days counts as urgent.
const urgentWindowDays = 3

// Requirement is a job opening tracked for a client.
type Requirement struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	JobCode            string     `json:"job_code" db:"job_code"`
	ClientName         string     `json:"client_name" db:"client_name"`
	Position           string     `json:"position" db:"position"`
	Location           string     `json:"location" db:"location"`
	PrimaryRecruiter   string     `json:"primary_recruiter" db:"primary_recruiter"`
	SecondaryRecruiter string     `json:"secondary_recruiter" db:"secondary_recruiter"`
	TATDeadline        *time.Time `json:"tat_deadline,omitempty" db:"tat_deadline"`
	Status             string     `json:"status" db:"status"`
	Description        string     `json:"description" db:"description"`
	CreatedAt          *time.Time `json:"created_at,omitempty" db:"created_at"`
}

// Assigned reports whether at least one recruiter field is set.
func (r Requirement) Assigned() bool {
	return r.PrimaryRecruiter != "" || r.SecondaryRecruiter != ""
}

// DaysRemaining returns whole calendar days between now and the deadline,
// negative when the deadline has passed. ok is false without a deadline.
func (r Requirement) DaysRemaining(now time.Time) (days int, ok bool) {
	if r.TATDeadline == nil {
		return 0, false
	}
	d := truncateToDay(*r.TATDeadline).Sub(truncateToDay(now))
	return int(d.Hours() / 24), true
}

// Bucket classifies the requirement's deadline urgency as of now.
func (r Requirement) Bucket(now time.Time) TATBucket {
	days, ok := r.DaysRemaining(now)
	switch {
	case !ok:
		return TATUnknown
	case days < 0:
		return TATExpired
	case days <= urgentWindowDays:
		return TATUrgent
	default:
		return TATNormal
	}
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

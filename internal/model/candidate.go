package model

import (
	"time"

	"github.com/google/uuid"
)

type CandidateStatus string

const (
	CandidateStatusSubmitted CandidateStatus = "Submitted"
	CandidateStatusPending   CandidateStatus = "Pending"
	CandidateStatusInterview CandidateStatus = "Interview"
	CandidateStatusOffer     CandidateStatus = "Offer"
	CandidateStatusJoined    CandidateStatus = "Joined"
	CandidateStatusRejected  CandidateStatus = "Rejected"
)

// CandidateStatuses lists every pipeline status in funnel order. Status
// counts are keyed over this exact set so they always sum to the total.
var CandidateStatuses = []CandidateStatus{
	CandidateStatusSubmitted,
	CandidateStatusPending,
	CandidateStatusInterview,
	CandidateStatusOffer,
	CandidateStatusJoined,
	CandidateStatusRejected,
}

func (s CandidateStatus) Valid() bool {
	for _, v := range CandidateStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Candidate struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	Email         string          `json:"email" db:"email"`
	Phone         string          `json:"phone" db:"phone"`
	Position      string          `json:"position" db:"position"`
	Status        CandidateStatus `json:"status" db:"status"`
	RecruiterID   uuid.UUID       `json:"recruiter_id" db:"recruiter_id"`
	RecruiterName string          `json:"recruiter_name" db:"recruiter_name"`
	Experience    string          `json:"experience" db:"experience"`
	CurrentCTC    string          `json:"current_ctc" db:"current_ctc"`
	ExpectedCTC   string          `json:"expected_ctc" db:"expected_ctc"`
	NoticePeriod  string          `json:"notice_period" db:"notice_period"`
	CreatedAt     *time.Time      `json:"created_at,omitempty" db:"created_at"`
}

// RecruiterStat is a per-recruiter rollup derived from the candidate
// collection on every aggregation pass; it is never persisted. Offers,
// joined, rejected and pending are disjoint subsets of submissions.
type RecruiterStat struct {
	RecruiterID   uuid.UUID `json:"recruiter_id"`
	RecruiterName string    `json:"recruiter_name"`
	Submissions   int       `json:"submissions"`
	Offers        int       `json:"offers"`
	Joined        int       `json:"joined"`
	Rejected      int       `json:"rejected"`
	Pending       int       `json:"pending"`
	SuccessRate   float64   `json:"success_rate"`
}

// RecruiterOutcome names one RecruiterStat bucket for drilldown.
type RecruiterOutcome string

const (
	OutcomeSubmissions RecruiterOutcome = "submissions"
	OutcomeOffers      RecruiterOutcome = "offers"
	OutcomeJoined      RecruiterOutcome = "joined"
	OutcomeRejected    RecruiterOutcome = "rejected"
	OutcomePending     RecruiterOutcome = "pending"
)

func (o RecruiterOutcome) Valid() bool {
	switch o {
	case OutcomeSubmissions, OutcomeOffers, OutcomeJoined, OutcomeRejected, OutcomePending:
		return true
	}
	return false
}

package analytics

import (
	"fmt"

	"github.com/talentpipe/ops-api/internal/model"
)

// StatusCounts keys every pipeline status, zero-valued when absent, so the
// counts always sum to the candidate total for the same window.
type StatusCounts map[model.CandidateStatus]int

func (c StatusCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// TATBuckets is the urgency breakdown of requirements. Unknown holds
// requirements without a deadline and is excluded from the other three.
type TATBuckets struct {
	Expired int `json:"expired"`
	Urgent  int `json:"urgent"`
	Normal  int `json:"normal"`
	Unknown int `json:"unknown"`
}

type ClientStats struct {
	Total      int            `json:"total"`
	ByIndustry map[string]int `json:"by_industry"`
}

// Summary is the output of one aggregation pass. Every sub-metric is
// computed over the same window-filtered copy of each collection.
type Summary struct {
	Window model.Window `json:"window"`

	TotalCandidates int          `json:"total_candidates"`
	StatusCounts    StatusCounts `json:"status_counts"`

	TotalRequirements      int        `json:"total_requirements"`
	AssignedRequirements   int        `json:"assigned_requirements"`
	UnassignedRequirements int        `json:"unassigned_requirements"`
	TATBuckets             TATBuckets `json:"tat_buckets"`

	RecruiterStats []model.RecruiterStat `json:"recruiter_stats"`
	ClientStats    ClientStats           `json:"client_stats"`

	// SuccessRate is the unrounded joined/total percentage; the display
	// string is the 2-decimal rendering of it.
	SuccessRate        float64 `json:"success_rate"`
	SuccessRateDisplay string  `json:"success_rate_display"`

	// DatelessExcluded counts records left out of this pass because the
	// window is bounded and they carry no date.
	DatelessExcluded int `json:"dateless_excluded,omitempty"`
}

func formatRate(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate)
}

package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/talentpipe/ops-api/internal/model"
	"github.com/talentpipe/ops-api/internal/snapshot"
)

// Aggregate derives every dashboard metric from one snapshot, as of now,
// over an optional window. It is pure: no I/O, no state carried between
// calls. Each collection is window-filtered exactly once and that copy
// feeds every sub-metric, so totals and breakdowns cannot drift apart.
func Aggregate(snap *snapshot.Snapshot, window model.Window, now time.Time) *Summary {
	candidates := filterCandidatesByWindow(snap.Candidates, window)
	requirements := filterRequirementsByWindow(snap.Requirements, window)
	clients := filterClientsByWindow(snap.Clients, window)

	sum := &Summary{
		Window:       window,
		StatusCounts: make(StatusCounts, len(model.CandidateStatuses)),
	}
	for _, s := range model.CandidateStatuses {
		sum.StatusCounts[s] = 0
	}

	sum.TotalCandidates = len(candidates)
	for _, c := range candidates {
		sum.StatusCounts[c.Status]++
	}

	sum.TotalRequirements = len(requirements)
	for _, r := range requirements {
		if r.Assigned() {
			sum.AssignedRequirements++
		} else {
			sum.UnassignedRequirements++
		}
		switch r.Bucket(now) {
		case model.TATExpired:
			sum.TATBuckets.Expired++
		case model.TATUrgent:
			sum.TATBuckets.Urgent++
		case model.TATNormal:
			sum.TATBuckets.Normal++
		default:
			sum.TATBuckets.Unknown++
		}
	}

	sum.RecruiterStats = recruiterStats(candidates)

	sum.ClientStats = ClientStats{
		Total:      len(clients),
		ByIndustry: make(map[string]int),
	}
	for _, cl := range clients {
		sum.ClientStats.ByIndustry[cl.Industry]++
	}

	if sum.TotalCandidates > 0 {
		sum.SuccessRate = 100 * float64(sum.StatusCounts[model.CandidateStatusJoined]) / float64(sum.TotalCandidates)
	}
	sum.SuccessRateDisplay = formatRate(sum.SuccessRate)

	if window.Bounded() {
		sum.DatelessExcluded = countDateless(snap)
	}

	return sum
}

// recruiterStats rolls the already window-filtered candidate set up per
// recruiter. Outcome buckets are disjoint subsets of submissions by status.
func recruiterStats(candidates []model.Candidate) []model.RecruiterStat {
	byID := make(map[uuid.UUID]*model.RecruiterStat)
	order := []uuid.UUID{}

	for _, c := range candidates {
		st, ok := byID[c.RecruiterID]
		if !ok {
			st = &model.RecruiterStat{
				RecruiterID:   c.RecruiterID,
				RecruiterName: c.RecruiterName,
			}
			byID[c.RecruiterID] = st
			order = append(order, c.RecruiterID)
		}
		st.Submissions++
		switch c.Status {
		case model.CandidateStatusOffer:
			st.Offers++
		case model.CandidateStatusJoined:
			st.Joined++
		case model.CandidateStatusRejected:
			st.Rejected++
		case model.CandidateStatusPending:
			st.Pending++
		}
	}

	stats := make([]model.RecruiterStat, 0, len(order))
	for _, id := range order {
		st := byID[id]
		if st.Submissions > 0 {
			st.SuccessRate = round1(100 * float64(st.Joined) / float64(st.Submissions))
		}
		stats = append(stats, *st)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Submissions != stats[j].Submissions {
			return stats[i].Submissions > stats[j].Submissions
		}
		return stats[i].RecruiterName < stats[j].RecruiterName
	})
	return stats
}

func countDateless(snap *snapshot.Snapshot) int {
	n := 0
	for _, c := range snap.Candidates {
		if c.CreatedAt == nil {
			n++
		}
	}
	for _, r := range snap.Requirements {
		if r.CreatedAt == nil {
			n++
		}
	}
	for _, cl := range snap.Clients {
		if cl.DateAdded == nil {
			n++
		}
	}
	return n
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

package analytics

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/talentpipe/ops-api/internal/model"
	"github.com/talentpipe/ops-api/internal/snapshot"
	"github.com/talentpipe/ops-api/pkg/errors"
)

// Metric discriminates which summary number a drilldown is backing.
type Metric string

const (
	MetricAll        Metric = "all"
	MetricStatus     Metric = "status"
	MetricAssigned   Metric = "assigned"
	MetricUnassigned Metric = "unassigned"
	MetricTAT        Metric = "tat"
	MetricRecruiter  Metric = "recruiter"
)

// Selector identifies a tile: entity kind, aggregation window and an
// optional discriminator. Resolving a selector with MetricAll and no UI
// filters returns exactly the window-filtered collection the aggregator
// computed its numbers from.
type Selector struct {
	Kind        model.EntityKind
	Window      model.Window
	Metric      Metric
	Status      model.CandidateStatus
	TATBucket   model.TATBucket
	RecruiterID uuid.UUID
	Outcome     model.RecruiterOutcome
}

// Filters are the compositional UI refinements, applied in sequence after
// the metric filter. Every predicate is ANDed; a zero value matches all.
type Filters struct {
	Search    string
	Status    model.CandidateStatus
	Recruiter string
	DateRange model.Window
}

// Window-filter primitives shared by the aggregator and the drilldown
// engine. Both paths must use these, never a private re-filter.

func filterCandidatesByWindow(in []model.Candidate, w model.Window) []model.Candidate {
	if !w.Bounded() {
		return in
	}
	out := make([]model.Candidate, 0, len(in))
	for _, c := range in {
		if w.Contains(c.CreatedAt) {
			out = append(out, c)
		}
	}
	return out
}

func filterRequirementsByWindow(in []model.Requirement, w model.Window) []model.Requirement {
	if !w.Bounded() {
		return in
	}
	out := make([]model.Requirement, 0, len(in))
	for _, r := range in {
		if w.Contains(r.CreatedAt) {
			out = append(out, r)
		}
	}
	return out
}

func filterClientsByWindow(in []model.Client, w model.Window) []model.Client {
	if !w.Bounded() {
		return in
	}
	out := make([]model.Client, 0, len(in))
	for _, c := range in {
		if w.Contains(c.DateAdded) {
			out = append(out, c)
		}
	}
	return out
}

// ResolveCandidates returns the candidate records backing a selector, in
// snapshot order, refined by the UI filters.
func ResolveCandidates(snap *snapshot.Snapshot, sel Selector, f Filters) ([]model.Candidate, error) {
	out := filterCandidatesByWindow(snap.Candidates, sel.Window)

	switch sel.Metric {
	case MetricAll, "":
	case MetricStatus:
		if !sel.Status.Valid() {
			return nil, errors.BadRequest("unknown candidate status", nil)
		}
		out = keepCandidates(out, func(c model.Candidate) bool { return c.Status == sel.Status })
	case MetricRecruiter:
		if sel.RecruiterID == uuid.Nil {
			return nil, errors.BadRequest("recruiter id is required", nil)
		}
		outcome := sel.Outcome
		if outcome == "" {
			outcome = model.OutcomeSubmissions
		}
		if !outcome.Valid() {
			return nil, errors.BadRequest("unknown recruiter outcome", nil)
		}
		out = keepCandidates(out, func(c model.Candidate) bool {
			if c.RecruiterID != sel.RecruiterID {
				return false
			}
			switch outcome {
			case model.OutcomeOffers:
				return c.Status == model.CandidateStatusOffer
			case model.OutcomeJoined:
				return c.Status == model.CandidateStatusJoined
			case model.OutcomeRejected:
				return c.Status == model.CandidateStatusRejected
			case model.OutcomePending:
				return c.Status == model.CandidateStatusPending
			default:
				return true
			}
		})
	default:
		return nil, errors.BadRequest("metric not applicable to candidates", nil)
	}

	if f.Status != "" {
		out = keepCandidates(out, func(c model.Candidate) bool { return c.Status == f.Status })
	}
	if f.Recruiter != "" {
		out = keepCandidates(out, func(c model.Candidate) bool {
			return strings.EqualFold(c.RecruiterName, f.Recruiter)
		})
	}
	if f.DateRange.Bounded() {
		out = filterCandidatesByWindow(out, f.DateRange)
	}
	if f.Search != "" {
		out = keepCandidates(out, func(c model.Candidate) bool {
			return matchAny(f.Search, c.Name, c.Email, c.Phone, c.Position, c.RecruiterName)
		})
	}
	return out, nil
}

// ResolveRequirements returns the requirement records backing a selector.
// TAT bucket membership is evaluated against now, the same clock the
// aggregator used for its pass.
func ResolveRequirements(snap *snapshot.Snapshot, sel Selector, f Filters, now time.Time) ([]model.Requirement, error) {
	out := filterRequirementsByWindow(snap.Requirements, sel.Window)

	switch sel.Metric {
	case MetricAll, "":
	case MetricAssigned:
		out = keepRequirements(out, model.Requirement.Assigned)
	case MetricUnassigned:
		out = keepRequirements(out, func(r model.Requirement) bool { return !r.Assigned() })
	case MetricTAT:
		if !sel.TATBucket.Valid() {
			return nil, errors.BadRequest("unknown TAT bucket", nil)
		}
		out = keepRequirements(out, func(r model.Requirement) bool { return r.Bucket(now) == sel.TATBucket })
	default:
		return nil, errors.BadRequest("metric not applicable to requirements", nil)
	}

	if f.Status != "" {
		out = keepRequirements(out, func(r model.Requirement) bool {
			return strings.EqualFold(r.Status, string(f.Status))
		})
	}
	if f.Recruiter != "" {
		out = keepRequirements(out, func(r model.Requirement) bool {
			return strings.EqualFold(r.PrimaryRecruiter, f.Recruiter) ||
				strings.EqualFold(r.SecondaryRecruiter, f.Recruiter)
		})
	}
	if f.DateRange.Bounded() {
		out = filterRequirementsByWindow(out, f.DateRange)
	}
	if f.Search != "" {
		out = keepRequirements(out, func(r model.Requirement) bool {
			return matchAny(f.Search, r.JobCode, r.ClientName, r.Position, r.Location,
				r.PrimaryRecruiter, r.SecondaryRecruiter)
		})
	}
	return out, nil
}

// ResolveClients returns the client records backing a selector. Clients
// only support the all metric plus UI filters.
func ResolveClients(snap *snapshot.Snapshot, sel Selector, f Filters) ([]model.Client, error) {
	if sel.Metric != MetricAll && sel.Metric != "" {
		return nil, errors.BadRequest("metric not applicable to clients", nil)
	}
	out := filterClientsByWindow(snap.Clients, sel.Window)

	if f.DateRange.Bounded() {
		out = filterClientsByWindow(out, f.DateRange)
	}
	if f.Search != "" {
		kept := make([]model.Client, 0, len(out))
		for _, c := range out {
			if matchAny(f.Search, c.CompanyName, c.ContactPerson, c.Email, c.Industry, c.Website, c.Address) {
				kept = append(kept, c)
			}
		}
		out = kept
	}
	return out, nil
}

// matchAny is a case-insensitive substring match over a fixed field set.
// An empty needle matches everything.
func matchAny(needle string, fields ...string) bool {
	if needle == "" {
		return true
	}
	needle = strings.ToLower(needle)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func keepCandidates(in []model.Candidate, pred func(model.Candidate) bool) []model.Candidate {
	out := make([]model.Candidate, 0, len(in))
	for _, c := range in {
		if pred(c) {
			out = append(out, c)
		}
	}
	return out
}

func keepRequirements(in []model.Requirement, pred func(model.Requirement) bool) []model.Requirement {
	out := make([]model.Requirement, 0, len(in))
	for _, r := range in {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

package analytics

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentpipe/ops-api/internal/model"
	"github.com/talentpipe/ops-api/internal/snapshot"
	"github.com/talentpipe/ops-api/pkg/logger"
	"github.com/talentpipe/ops-api/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("test_analytics")

func testLogger() *logger.Logger {
	return logger.NewLogger(&logger.Config{Level: logger.FatalLevel, Output: io.Discard})
}

type stubCandidates struct{ records []model.Candidate }

func (r *stubCandidates) List(context.Context) ([]model.Candidate, error) { return r.records, nil }
func (r *stubCandidates) Create(_ context.Context, c *model.Candidate) (*model.Candidate, error) {
	return c, nil
}
func (r *stubCandidates) UpdateStatus(_ context.Context, _ uuid.UUID, _ model.CandidateStatus) (*model.Candidate, error) {
	return nil, nil
}

type stubRequirements struct{}

func (r *stubRequirements) List(context.Context) ([]model.Requirement, error) { return nil, nil }
func (r *stubRequirements) Create(_ context.Context, req *model.Requirement) (*model.Requirement, error) {
	return req, nil
}

type stubClients struct{}

func (r *stubClients) List(context.Context) ([]model.Client, error) { return nil, nil }
func (r *stubClients) Create(_ context.Context, c *model.Client) (*model.Client, error) {
	return c, nil
}

type stubInterviews struct{}

func (r *stubInterviews) List(context.Context) ([]model.Interview, error) { return nil, nil }
func (r *stubInterviews) Create(_ context.Context, iv *model.Interview) (*model.Interview, error) {
	return iv, nil
}
func (r *stubInterviews) Delete(context.Context, uuid.UUID) error { return nil }

func newServiceFixture(t *testing.T) (*Service, *snapshot.Store, *stubCandidates) {
	t.Helper()
	cands := &stubCandidates{records: []model.Candidate{
		{ID: uuid.New(), Name: "Anita Rao", Status: model.CandidateStatusJoined, RecruiterID: uuid.New()},
	}}
	store := snapshot.NewStore(cands, &stubRequirements{}, &stubClients{}, &stubInterviews{},
		nil, testLogger(), testMetrics)
	_, err := store.Refresh(context.Background())
	require.NoError(t, err)
	return NewService(store, testLogger(), testMetrics), store, cands
}

func TestSummaryCachedPerSnapshotVersion(t *testing.T) {
	svc, _, _ := newServiceFixture(t)

	first := svc.Summary(model.Window{})
	second := svc.Summary(model.Window{})
	assert.Same(t, first, second)
}

func TestSummaryRecomputedAfterRefresh(t *testing.T) {
	svc, store, cands := newServiceFixture(t)

	before := svc.Summary(model.Window{})
	require.Equal(t, 1, before.TotalCandidates)

	cands.records = append(cands.records, model.Candidate{
		ID: uuid.New(), Name: "Ben Okoye", Status: model.CandidateStatusSubmitted, RecruiterID: uuid.New(),
	})
	_, err := store.Refresh(context.Background())
	require.NoError(t, err)

	after := svc.Summary(model.Window{})
	assert.NotSame(t, before, after)
	assert.Equal(t, 2, after.TotalCandidates)
}

func TestSummaryCacheKeyedByWindow(t *testing.T) {
	svc, _, _ := newServiceFixture(t)

	all := svc.Summary(model.Window{})
	bounded := svc.Summary(model.Window{Start: datePtr(testNow)})
	assert.NotSame(t, all, bounded)
}

func TestDrilldownDispatchesByKind(t *testing.T) {
	svc, _, _ := newServiceFixture(t)

	records, err := svc.Drilldown(Selector{Kind: model.EntityCandidate, Metric: MetricAll}, Filters{})
	require.NoError(t, err)
	assert.Len(t, records.([]model.Candidate), 1)

	_, err = svc.Drilldown(Selector{Kind: "payroll"}, Filters{})
	assert.Error(t, err)
}

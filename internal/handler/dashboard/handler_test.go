package dashboard

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentpipe/ops-api/internal/analytics"
	"github.com/talentpipe/ops-api/internal/model"
	apperrors "github.com/talentpipe/ops-api/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func selectorContext(t *testing.T, kind, query string) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/drilldown/"+kind+"?"+query, nil)
	c.Params = gin.Params{{Key: "kind", Value: kind}}
	return c
}

func TestParseSelectorDefaults(t *testing.T) {
	sel, filters, err := ParseSelector(selectorContext(t, "candidate", ""))
	require.NoError(t, err)

	assert.Equal(t, model.EntityCandidate, sel.Kind)
	assert.Equal(t, analytics.MetricAll, sel.Metric)
	assert.False(t, sel.Window.Bounded())
	assert.Empty(t, filters.Search)
}

func TestParseSelectorRejectsUnknownKind(t *testing.T) {
	_, _, err := ParseSelector(selectorContext(t, "payroll", ""))
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}

func TestParseSelectorWindowEndIsInclusive(t *testing.T) {
	sel, _, err := ParseSelector(selectorContext(t, "candidate", "start=2025-06-01&end=2025-06-30"))
	require.NoError(t, err)

	require.NotNil(t, sel.Window.Start)
	require.NotNil(t, sel.Window.End)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *sel.Window.Start)

	// A record created late on the end day still falls inside.
	lastMoment := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
	assert.True(t, sel.Window.Contains(&lastMoment))
	nextDay := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	assert.False(t, sel.Window.Contains(&nextDay))
}

func TestParseSelectorRejectsMalformedDate(t *testing.T) {
	cases := []string{"start=30-06-2025", "end=notadate", "from=2025/06/01"}
	for _, q := range cases {
		_, _, err := ParseSelector(selectorContext(t, "candidate", q))
		require.Error(t, err, q)
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrBadRequest, appErr.Code, q)
	}
}

func TestParseSelectorMetricDiscriminators(t *testing.T) {
	sel, _, err := ParseSelector(selectorContext(t, "candidate", "metric=status&status=Joined"))
	require.NoError(t, err)
	assert.Equal(t, analytics.MetricStatus, sel.Metric)
	assert.Equal(t, model.CandidateStatusJoined, sel.Status)

	sel, _, err = ParseSelector(selectorContext(t, "requirement", "metric=tat&bucket=urgent"))
	require.NoError(t, err)
	assert.Equal(t, model.TATUrgent, sel.TATBucket)

	rid := uuid.New()
	sel, _, err = ParseSelector(selectorContext(t, "candidate", "metric=recruiter&recruiter_id="+rid.String()))
	require.NoError(t, err)
	assert.Equal(t, rid, sel.RecruiterID)
	assert.Equal(t, model.OutcomeSubmissions, sel.Outcome)
}

func TestParseSelectorRecruiterRequiresValidID(t *testing.T) {
	_, _, err := ParseSelector(selectorContext(t, "candidate", "metric=recruiter&recruiter_id=nope"))
	require.Error(t, err)

	_, _, err = ParseSelector(selectorContext(t, "candidate", "metric=recruiter"))
	require.Error(t, err)
}

func TestParseSelectorRejectsUnknownMetric(t *testing.T) {
	_, _, err := ParseSelector(selectorContext(t, "candidate", "metric=velocity"))
	require.Error(t, err)
}

func TestParseSelectorUIFilters(t *testing.T) {
	q := "q=anita&filter_status=Offer&recruiter=Alice&from=2025-06-01&to=2025-06-15"
	_, filters, err := ParseSelector(selectorContext(t, "candidate", q))
	require.NoError(t, err)

	assert.Equal(t, "anita", filters.Search)
	assert.Equal(t, model.CandidateStatusOffer, filters.Status)
	assert.Equal(t, "Alice", filters.Recruiter)
	assert.True(t, filters.DateRange.Bounded())
}

func TestParseSelectorKindFromQueryFallback(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/export?kind=client", nil)

	sel, _, err := ParseSelector(c)
	require.NoError(t, err)
	assert.Equal(t, model.EntityClient, sel.Kind)
}

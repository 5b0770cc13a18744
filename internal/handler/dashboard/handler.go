package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/talentpipe/ops-api/internal/analytics"
	"github.com/talentpipe/ops-api/internal/model"
	"github.com/talentpipe/ops-api/internal/snapshot"
	"github.com/talentpipe/ops-api/pkg/errors"
	"github.com/talentpipe/ops-api/pkg/httputil"
)

type Handler struct {
	service *analytics.Service
	store   *snapshot.Store
}

func NewHandler(service *analytics.Service, store *snapshot.Store) *Handler {
	return &Handler{service: service, store: store}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	dashboard := r.Group("/dashboard")
	{
		dashboard.GET("/summary", h.GetSummary)
		dashboard.GET("/drilldown/:kind", h.GetDrilldown)
		dashboard.POST("/refresh", h.Refresh)
	}
}

// GetSummary runs one aggregation pass over the current snapshot,
// optionally bounded by ?start=YYYY-MM-DD&end=YYYY-MM-DD.
func (h *Handler) GetSummary(c *gin.Context) {
	window, err := parseWindow(c, "start", "end")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, h.service.Summary(window))
}

// GetDrilldown returns the exact record subset backing a summary tile.
func (h *Handler) GetDrilldown(c *gin.Context) {
	sel, filters, err := ParseSelector(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	records, err := h.service.Drilldown(sel, filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, records)
}

// Refresh replaces the in-memory collections with a fresh read of the
// source backend and returns the new snapshot's shape.
func (h *Handler) Refresh(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	snap, err := h.store.Refresh(ctx)
	if err != nil {
		httputil.RespondWithError(c, errors.Unavailable("refresh failed", err))
		return
	}
	httputil.RespondWithSuccess(c, gin.H{
		"version":      snap.Version,
		"fetched_at":   snap.FetchedAt,
		"candidates":   len(snap.Candidates),
		"requirements": len(snap.Requirements),
		"clients":      len(snap.Clients),
		"interviews":   len(snap.Interviews),
		"missing":      snap.Missing,
	})
}

// ParseSelector reads a metric selector plus UI filters from the request.
// The export handler parses the same parameter set, so a drilldown and its
// download can never diverge.
func ParseSelector(c *gin.Context) (analytics.Selector, analytics.Filters, error) {
	var sel analytics.Selector
	var filters analytics.Filters

	kind := model.EntityKind(c.Param("kind"))
	if kind == "" {
		kind = model.EntityKind(c.Query("kind"))
	}
	if !kind.Valid() {
		return sel, filters, errors.BadRequest(fmt.Sprintf("unknown entity kind %q", kind), nil)
	}
	sel.Kind = kind

	window, err := parseWindow(c, "start", "end")
	if err != nil {
		return sel, filters, err
	}
	sel.Window = window

	metric := analytics.Metric(strings.ToLower(c.DefaultQuery("metric", string(analytics.MetricAll))))
	sel.Metric = metric
	switch metric {
	case analytics.MetricStatus:
		sel.Status = model.CandidateStatus(c.Query("status"))
	case analytics.MetricTAT:
		sel.TATBucket = model.TATBucket(c.Query("bucket"))
	case analytics.MetricRecruiter:
		id, err := uuid.Parse(c.Query("recruiter_id"))
		if err != nil {
			return sel, filters, errors.BadRequest("invalid recruiter id", err)
		}
		sel.RecruiterID = id
		sel.Outcome = model.RecruiterOutcome(c.DefaultQuery("outcome", string(model.OutcomeSubmissions)))
	case analytics.MetricAll, analytics.MetricAssigned, analytics.MetricUnassigned:
	default:
		return sel, filters, errors.BadRequest(fmt.Sprintf("unknown metric %q", metric), nil)
	}

	filters.Search = c.Query("q")
	filters.Status = model.CandidateStatus(c.Query("filter_status"))
	filters.Recruiter = c.Query("recruiter")
	dateRange, err := parseWindow(c, "from", "to")
	if err != nil {
		return sel, filters, err
	}
	filters.DateRange = dateRange

	return sel, filters, nil
}

// parseWindow reads an optional date range. A malformed date is an error
// surfaced to the caller, never treated as an open bound.
func parseWindow(c *gin.Context, startParam, endParam string) (model.Window, error) {
	var w model.Window
	if v := c.Query(startParam); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return w, errors.BadRequest(fmt.Sprintf("invalid %s date", startParam), err)
		}
		w.Start = &t
	}
	if v := c.Query(endParam); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return w, errors.BadRequest(fmt.Sprintf("invalid %s date", endParam), err)
		}
		// Make the end bound inclusive of the whole day.
		t = t.Add(24*time.Hour - time.Nanosecond)
		w.End = &t
	}
	return w, nil
}

package export

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/talentpipe/ops-api/internal/analytics"
	"github.com/talentpipe/ops-api/internal/export"
	"github.com/talentpipe/ops-api/internal/handler/dashboard"
	"github.com/talentpipe/ops-api/internal/model"
	"github.com/talentpipe/ops-api/internal/snapshot"
	"github.com/talentpipe/ops-api/pkg/errors"
	"github.com/talentpipe/ops-api/pkg/httputil"
	"github.com/talentpipe/ops-api/pkg/logger"
)

type Handler struct {
	store  *snapshot.Store
	logger *logger.Logger
}

func NewHandler(store *snapshot.Store, logger *logger.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/export/:kind", h.Download)
}

// Download streams the filtered record set as a CSV attachment. It accepts
// the same selector and filter parameters as the drilldown endpoint, so a
// drilldown and its download can never diverge; row order is the order the
// drilldown established. Zero matching records still produce the header row.
func (h *Handler) Download(c *gin.Context) {
	sel, filters, err := dashboard.ParseSelector(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	snap := h.store.Current()
	now := time.Now()

	var write func(io.Writer) error
	switch sel.Kind {
	case model.EntityCandidate:
		records, rerr := analytics.ResolveCandidates(snap, sel, filters)
		if rerr != nil {
			httputil.RespondWithError(c, rerr)
			return
		}
		write = func(w io.Writer) error { return export.Candidates(w, records) }
	case model.EntityRequirement:
		records, rerr := analytics.ResolveRequirements(snap, sel, filters, now)
		if rerr != nil {
			httputil.RespondWithError(c, rerr)
			return
		}
		write = func(w io.Writer) error { return export.Requirements(w, records) }
	case model.EntityClient:
		records, rerr := analytics.ResolveClients(snap, sel, filters)
		if rerr != nil {
			httputil.RespondWithError(c, rerr)
			return
		}
		write = func(w io.Writer) error { return export.Clients(w, records) }
	default:
		httputil.RespondWithError(c, errors.BadRequest(fmt.Sprintf("kind %q is not exportable", sel.Kind), nil))
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s", export.Filename(sel.Kind, now)))
	c.Status(http.StatusOK)

	if err := write(c.Writer); err != nil {
		// Headers are already out; log rather than rewrite the response.
		h.logger.Error(err, "export failed", "kind", string(sel.Kind))
	}
}

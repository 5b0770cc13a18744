package notification

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentpipe/ops-api/internal/model"
	"github.com/talentpipe/ops-api/internal/notification"
	"github.com/talentpipe/ops-api/pkg/logger"
	"github.com/talentpipe/ops-api/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("test_notification_handler")

func newTestRouter(t *testing.T) (*gin.Engine, *notification.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewLogger(&logger.Config{Level: logger.FatalLevel, Output: io.Discard})
	store := notification.NewStore(
		notification.NewFileLog(filepath.Join(t.TempDir(), "notifications.json")), log, testMetrics)
	require.NoError(t, store.Init(context.Background()))

	r := gin.New()
	NewHandler(store).RegisterRoutes(r.Group("/api/v1"))
	return r, store
}

func do(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seed(t *testing.T, store *notification.Store, title string) *model.Notification {
	t.Helper()
	n, err := store.Add(context.Background(), model.NotificationEvent{
		Kind: model.NotificationStatusChange, Title: title,
	})
	require.NoError(t, err)
	return n
}

func TestListIncludesUnreadCount(t *testing.T) {
	r, store := newTestRouter(t)
	seed(t, store, "a")
	seed(t, store, "b")

	w := do(t, r, http.MethodGet, "/api/v1/notifications", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Notifications []model.Notification `json:"notifications"`
			UnreadCount   int                  `json:"unread_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data.Notifications, 2)
	assert.Equal(t, 2, body.Data.UnreadCount)
	assert.Equal(t, "b", body.Data.Notifications[0].Title)
}

func TestCreateAcceptsDomainEvent(t *testing.T) {
	r, store := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/notifications",
		`{"kind":"submission","title":"New candidate","message":"Anita Rao submitted"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	items := store.List()
	require.Len(t, items, 1)
	assert.Equal(t, model.NotificationSubmission, items[0].Kind)
}

func TestCreateRejectsMalformedBody(t *testing.T) {
	r, store := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/notifications", `{"kind":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.List())
}

func TestMarkReadFlow(t *testing.T) {
	r, store := newTestRouter(t)
	n := seed(t, store, "unread")

	w := do(t, r, http.MethodPut, "/api/v1/notifications/"+n.ID.String()+"/read", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, store.UnreadCount())
}

func TestMarkReadUnknownIDIs404(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(t, r, http.MethodPut, "/api/v1/notifications/"+uuid.NewString()+"/read", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMarkReadInvalidIDIs400(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(t, r, http.MethodPut, "/api/v1/notifications/not-a-uuid/read", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarkAllReadAndClear(t *testing.T) {
	r, store := newTestRouter(t)
	seed(t, store, "a")
	seed(t, store, "b")

	w := do(t, r, http.MethodPut, "/api/v1/notifications/read-all", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, store.UnreadCount())
	assert.Len(t, store.List(), 2)

	w = do(t, r, http.MethodDelete, "/api/v1/notifications/clear", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.List())
}

func TestDeleteSingleNotification(t *testing.T) {
	r, store := newTestRouter(t)
	keep := seed(t, store, "keep")
	drop := seed(t, store, "drop")

	w := do(t, r, http.MethodDelete, "/api/v1/notifications/"+drop.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)

	items := store.List()
	require.Len(t, items, 1)
	assert.Equal(t, keep.ID, items[0].ID)

	// Deleting again is still a success; the operation is idempotent.
	w = do(t, r, http.MethodDelete, "/api/v1/notifications/"+drop.ID.String(), "")
	assert.Equal(t, http.StatusOK, w.Code)
}

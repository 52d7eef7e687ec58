package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ayush/blog-moderation/backend/internal/httpjson"
	"github.com/ayush/blog-moderation/backend/internal/metrics"
	"github.com/ayush/blog-moderation/backend/internal/models"
	"github.com/ayush/blog-moderation/backend/internal/moderation"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev models.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

type fixture struct {
	store   *moderation.Store
	events  *recordingPublisher
	metrics *metrics.Metrics
	handler *Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := moderation.NewStore(moderation.DefaultSeed(time.Now().UTC()))
	events := &recordingPublisher{}
	m := metrics.New(prometheus.NewRegistry(), func() moderation.Counts { return store.Counts(context.Background()) })
	return &fixture{
		store:   store,
		events:  events,
		metrics: m,
		handler: NewHandler(store, events, m, zap.NewNop()),
	}
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeFailure(t *testing.T, rec *httptest.ResponseRecorder) httpjson.Failure {
	t.Helper()
	var body httpjson.Failure
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestListPending(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	f.handler.ListPending(rec, httptest.NewRequest(http.MethodGet, "/api/admin/users/pending", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Pending []models.PendingUser `json:"pending"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Pending, 8)
	assert.Equal(t, "u_1", body.Pending[0].ID)
	assert.Equal(t, "ALICE2024", body.Pending[0].ReferenceCode)
}

func TestApprove(t *testing.T) {
	f := newFixture(t)

	t.Run("wrong code", func(t *testing.T) {
		rec := post(f.handler.Approve, `{"id":"u_1","referenceCode":"WRONG"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeFailure(t, rec)
		assert.False(t, body.OK)
		assert.Equal(t, httpjson.InvalidCodeMessage, body.Error)
		assert.Len(t, f.store.ListPendingUsers(context.Background()), 8)
		assert.Empty(t, f.events.events)
		assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.UserDecisions.WithLabelValues(metrics.InvalidCode)))
	})

	t.Run("correct code", func(t *testing.T) {
		rec := post(f.handler.Approve, `{"id":"u_1","referenceCode":"ALICE2024"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

		assert.Len(t, f.store.ListPendingUsers(context.Background()), 7)
		approved := f.store.ListApprovedUsers(context.Background())
		require.Len(t, approved, 1)
		assert.Equal(t, "u_1", approved[0].ID)

		require.Len(t, f.events.events, 1)
		assert.Equal(t, models.EventUserApproved, f.events.events[0].Type)
		assert.Equal(t, "u_1", f.events.events[0].ID)
	})

	t.Run("already approved is not found", func(t *testing.T) {
		rec := post(f.handler.Approve, `{"id":"u_1","referenceCode":"ALICE2024"}`)
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "User not found", decodeFailure(t, rec).Error)
	})

	t.Run("unknown id is not found rather than invalid code", func(t *testing.T) {
		rec := post(f.handler.Approve, `{"id":"u_99","referenceCode":"X"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad requests", func(t *testing.T) {
		tests := []struct {
			body string
			want string
		}{
			{`{"referenceCode":"X"}`, "Missing id"},
			{`{"id":"u_2"}`, "Reference code is required"},
			{`{"id":`, "invalid request body"},
			{``, "Missing id"},
		}
		for _, tt := range tests {
			rec := post(f.handler.Approve, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, tt.body)
			assert.Equal(t, tt.want, decodeFailure(t, rec).Error, tt.body)
		}
	})
}

func TestReject(t *testing.T) {
	f := newFixture(t)

	rec := post(f.handler.Reject, `{"id":"u_2"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, f.store.ListPendingUsers(context.Background()), 7)
	assert.Empty(t, f.store.ListApprovedUsers(context.Background()))
	require.Len(t, f.events.events, 1)
	assert.Equal(t, models.EventUserRejected, f.events.events[0].Type)

	rec = post(f.handler.Reject, `{"id":"u_2"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = post(f.handler.Reject, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture(t)
	f.events.err = errors.New("redis down")

	rec := post(f.handler.Reject, `{"id":"u_3"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListApproved(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.ApproveUser(context.Background(), "u_5", "EMMA789"))

	rec := httptest.NewRecorder()
	f.handler.ListApproved(rec, httptest.NewRequest(http.MethodGet, "/api/admin/users/approved", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Approved []models.PendingUser `json:"approved"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Approved, 1)
	assert.Equal(t, "Emma Wilson", body.Approved[0].Name)
}

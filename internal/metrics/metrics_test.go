package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush/blog-moderation/backend/internal/moderation"
)

func TestMetrics(t *testing.T) {
	store := moderation.NewStore(moderation.DefaultSeed(time.Now()))
	m := New(prometheus.NewRegistry(), func() moderation.Counts { return store.Counts(context.Background()) })

	m.UserDecision(Approved)
	m.UserDecision(InvalidCode)
	m.UserDecision(InvalidCode)
	m.DraftDecision(Published)
	m.DraftSubmitted()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.UserDecisions.WithLabelValues(Approved)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.UserDecisions.WithLabelValues(InvalidCode)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DraftDecisions.WithLabelValues(Published)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DraftsSubmitted))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "moderation_pending_users 8")
	assert.Contains(t, rec.Body.String(), "moderation_pending_drafts 5")
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.UserDecision(Rejected)
		m.DraftDecision(Deleted)
		m.DraftSubmitted()
		m.SubmissionInvalid()
		m.CoverUploaded()
	})
}

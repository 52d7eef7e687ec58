package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ayush/blog-moderation/backend/internal/moderation"
)

// Decision label values.
const (
	Approved    = "approved"
	Rejected    = "rejected"
	InvalidCode = "invalid_code"
	Published   = "published"
	Deleted     = "deleted"
)

// Metrics holds the Prometheus collectors for the moderation queue.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	UserDecisions      *prometheus.CounterVec
	DraftDecisions     *prometheus.CounterVec
	DraftsSubmitted    prometheus.Counter
	SubmissionsInvalid prometheus.Counter
	CoversUploaded     prometheus.Counter
}

// New registers the collectors on reg. counts backs the queue size gauges.
func New(reg *prometheus.Registry, counts func() moderation.Counts) *Metrics {
	f := promauto.With(reg)
	m := &Metrics{
		registry: reg,
		UserDecisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "moderation_user_decisions_total",
			Help: "User approval attempts by outcome",
		}, []string{"decision"}),
		DraftDecisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "moderation_draft_decisions_total",
			Help: "Draft moderation actions by outcome",
		}, []string{"decision"}),
		DraftsSubmitted: f.NewCounter(prometheus.CounterOpts{
			Name: "moderation_drafts_submitted_total",
			Help: "Drafts accepted from the public submission form",
		}),
		SubmissionsInvalid: f.NewCounter(prometheus.CounterOpts{
			Name: "moderation_submissions_invalid_total",
			Help: "Draft submissions rejected by validation",
		}),
		CoversUploaded: f.NewCounter(prometheus.CounterOpts{
			Name: "moderation_covers_uploaded_total",
			Help: "Cover images stored for draft submissions",
		}),
	}

	f.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "moderation_pending_users",
		Help: "Users awaiting a decision",
	}, func() float64 { return float64(counts().PendingUsers) })
	f.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "moderation_pending_drafts",
		Help: "Drafts awaiting a decision",
	}, func() float64 { return float64(counts().PendingDrafts) })

	return m
}

func (m *Metrics) UserDecision(decision string) {
	if m == nil {
		return
	}
	m.UserDecisions.WithLabelValues(decision).Inc()
}

func (m *Metrics) DraftDecision(decision string) {
	if m == nil {
		return
	}
	m.DraftDecisions.WithLabelValues(decision).Inc()
}

func (m *Metrics) DraftSubmitted() {
	if m == nil {
		return
	}
	m.DraftsSubmitted.Inc()
}

func (m *Metrics) SubmissionInvalid() {
	if m == nil {
		return
	}
	m.SubmissionsInvalid.Inc()
}

func (m *Metrics) CoverUploaded() {
	if m == nil {
		return
	}
	m.CoversUploaded.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

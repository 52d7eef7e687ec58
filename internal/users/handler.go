package users

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ayush/blog-moderation/backend/internal/httpjson"
	"github.com/ayush/blog-moderation/backend/internal/metrics"
	"github.com/ayush/blog-moderation/backend/internal/models"
	"github.com/ayush/blog-moderation/backend/internal/moderation"
)

// Queue is the part of the moderation store the user endpoints need.
type Queue interface {
	ListPendingUsers(ctx context.Context) []models.PendingUser
	ListApprovedUsers(ctx context.Context) []models.PendingUser
	ApproveUser(ctx context.Context, id, code string) error
	RejectUser(ctx context.Context, id string) error
}

// Publisher broadcasts moderation decisions.
type Publisher interface {
	Publish(ctx context.Context, ev models.Event) error
}

// Handler holds the user moderation HTTP handlers.
type Handler struct {
	queue   Queue
	events  Publisher
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewHandler(queue Queue, events Publisher, m *metrics.Metrics, log *zap.Logger) *Handler {
	return &Handler{queue: queue, events: events, metrics: m, log: log}
}

// ListPending returns the registrations awaiting review, including their
// reference codes.
func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, map[string][]models.PendingUser{
		"pending": h.queue.ListPendingUsers(r.Context()),
	})
}

// ListApproved returns the registrations approved since startup.
func (h *Handler) ListApproved(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, map[string][]models.PendingUser{
		"approved": h.queue.ListApprovedUsers(r.Context()),
	})
}

// Approve checks the reference code and moves the user to approved.
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	var req models.ApproveUserRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == "" {
		httpjson.Fail(w, http.StatusBadRequest, "Missing id")
		return
	}
	if req.ReferenceCode == "" {
		httpjson.Fail(w, http.StatusBadRequest, "Reference code is required")
		return
	}

	if err := h.queue.ApproveUser(r.Context(), req.ID, req.ReferenceCode); err != nil {
		if errors.Is(err, moderation.ErrInvalidCode) {
			h.metrics.UserDecision(metrics.InvalidCode)
			h.log.Info("reference code mismatch", zap.String("user_id", req.ID))
		}
		httpjson.Error(w, h.log, err)
		return
	}

	h.metrics.UserDecision(metrics.Approved)
	h.log.Info("user approved", zap.String("user_id", req.ID))
	h.notify(r.Context(), models.EventUserApproved, req.ID)
	httpjson.Write(w, http.StatusOK, httpjson.OK{OK: true})
}

// Reject removes the user from the pending queue.
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	var req models.IDRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == "" {
		httpjson.Fail(w, http.StatusBadRequest, "Missing id")
		return
	}

	if err := h.queue.RejectUser(r.Context(), req.ID); err != nil {
		httpjson.Error(w, h.log, err)
		return
	}

	h.metrics.UserDecision(metrics.Rejected)
	h.log.Info("user rejected", zap.String("user_id", req.ID))
	h.notify(r.Context(), models.EventUserRejected, req.ID)
	httpjson.Write(w, http.StatusOK, httpjson.OK{OK: true})
}

// notify is best effort: the decision is already committed.
func (h *Handler) notify(ctx context.Context, typ models.EventType, id string) {
	ev := models.Event{Type: typ, ID: id, At: time.Now().UTC()}
	if err := h.events.Publish(ctx, ev); err != nil {
		h.log.Warn("publish moderation event", zap.String("type", string(typ)), zap.String("id", id), zap.Error(err))
	}
}

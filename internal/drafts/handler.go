package drafts

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ayush/blog-moderation/backend/internal/httpjson"
	"github.com/ayush/blog-moderation/backend/internal/metrics"
	"github.com/ayush/blog-moderation/backend/internal/models"
	"github.com/ayush/blog-moderation/backend/internal/moderation"
)

const maxSubmissionBytes = 1 << 20

// Queue is the part of the moderation store the draft endpoints need.
type Queue interface {
	ListDrafts(ctx context.Context, f moderation.DraftFilter) []models.BlogDraft
	GetDraft(ctx context.Context, id string) (models.BlogDraft, bool)
	SubmitDraft(ctx context.Context, req models.SubmitDraftRequest) (models.BlogDraft, error)
	PublishDraft(ctx context.Context, id string) error
	RejectDraft(ctx context.Context, id string) error
	DeleteDraft(ctx context.Context, id string) (moderation.Removal, error)
}

// Publisher broadcasts moderation decisions.
type Publisher interface {
	Publish(ctx context.Context, ev models.Event) error
}

// FileStore defines the interface for cover image storage.
type FileStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, string, error)
	Remove(ctx context.Context, key string) error
}

// Handler holds the draft moderation and submission HTTP handlers.
type Handler struct {
	queue         Queue
	events        Publisher
	covers        FileStore
	coverMaxBytes int64
	metrics       *metrics.Metrics
	log           *zap.Logger
}

// NewHandler wires the draft handlers. covers may be nil, in which case
// cover uploads answer 503.
func NewHandler(queue Queue, events Publisher, covers FileStore, coverMaxBytes int64, m *metrics.Metrics, log *zap.Logger) *Handler {
	return &Handler{
		queue:         queue,
		events:        events,
		covers:        covers,
		coverMaxBytes: coverMaxBytes,
		metrics:       m,
		log:           log,
	}
}

// List returns every draft, or only those matching ?status=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var f moderation.DraftFilter
	if s := r.URL.Query().Get("status"); s != "" {
		f.Status = models.DraftStatus(s)
		if !f.Status.Valid() {
			httpjson.Fail(w, http.StatusBadRequest, "unknown status "+s)
			return
		}
	}
	httpjson.Write(w, http.StatusOK, map[string][]models.BlogDraft{
		"drafts": h.queue.ListDrafts(r.Context(), f),
	})
}

// Get returns a single draft.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	draft, ok := h.queue.GetDraft(r.Context(), chi.URLParam(r, "id"))
	if !ok {
		httpjson.Error(w, h.log, moderation.ErrDraftNotFound)
		return
	}
	httpjson.Write(w, http.StatusOK, struct {
		OK    bool             `json:"ok"`
		Draft models.BlogDraft `json:"draft"`
	}{OK: true, Draft: draft})
}

// Publish approves the draft named in the JSON body.
func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	h.actOnBody(w, r, h.publishDraft)
}

// Reject rejects the draft named in the JSON body.
func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.actOnBody(w, r, h.rejectDraft)
}

// Delete removes the draft named in the JSON body.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	h.actOnBody(w, r, h.deleteDraft)
}

// PublishByPath approves the draft named in the URL.
func (h *Handler) PublishByPath(w http.ResponseWriter, r *http.Request) {
	h.actOnPath(w, r, h.publishDraft)
}

// RejectByPath rejects the draft named in the URL.
func (h *Handler) RejectByPath(w http.ResponseWriter, r *http.Request) {
	h.actOnPath(w, r, h.rejectDraft)
}

// DeleteByPath removes the draft named in the URL.
func (h *Handler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	h.actOnPath(w, r, h.deleteDraft)
}

type action func(ctx context.Context, id string) error

func (h *Handler) publishDraft(ctx context.Context, id string) error {
	if err := h.queue.PublishDraft(ctx, id); err != nil {
		return err
	}
	h.decided(ctx, metrics.Published, models.EventDraftPublished, id)
	return nil
}

func (h *Handler) rejectDraft(ctx context.Context, id string) error {
	if err := h.queue.RejectDraft(ctx, id); err != nil {
		return err
	}
	h.decided(ctx, metrics.Rejected, models.EventDraftRejected, id)
	return nil
}

func (h *Handler) deleteDraft(ctx context.Context, id string) error {
	rm, err := h.queue.DeleteDraft(ctx, id)
	if err != nil {
		return err
	}
	h.decided(ctx, metrics.Deleted, models.EventDraftDeleted, id)
	if !rm.CoverShared {
		h.removeCover(ctx, rm.Draft.CoverImage)
	}
	return nil
}

func (h *Handler) actOnBody(w http.ResponseWriter, r *http.Request, act action) {
	var req models.IDRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == "" {
		httpjson.Fail(w, http.StatusBadRequest, "Missing id")
		return
	}
	h.run(w, r, act, req.ID)
}

// actOnPath uses the URL id. A body id is optional but must agree with it.
func (h *Handler) actOnPath(w http.ResponseWriter, r *http.Request, act action) {
	id := chi.URLParam(r, "id")
	var req models.IDRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID != "" && req.ID != id {
		httpjson.Fail(w, http.StatusBadRequest, "id in body does not match URL")
		return
	}
	h.run(w, r, act, id)
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request, act action, id string) {
	if err := act(r.Context(), id); err != nil {
		httpjson.Error(w, h.log, err)
		return
	}
	httpjson.Write(w, http.StatusOK, httpjson.OK{OK: true})
}

func (h *Handler) decided(ctx context.Context, decision string, typ models.EventType, id string) {
	h.metrics.DraftDecision(decision)
	h.log.Info("draft "+decision, zap.String("draft_id", id))
	h.notify(ctx, typ, id)
}

// Submit accepts a draft from the public form.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSubmissionBytes)

	var req models.SubmitDraftRequest
	if err := httpjson.Decode(r, &req); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeMessage(w, http.StatusRequestEntityTooLarge, "Submission too large", "")
			return
		}
		writeMessage(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	draft, err := h.queue.SubmitDraft(r.Context(), req)
	if err != nil {
		var verr *moderation.ValidationError
		if errors.As(err, &verr) {
			h.metrics.SubmissionInvalid()
			writeMessage(w, http.StatusBadRequest, verr.Message, verr.Field)
			return
		}
		h.log.Error("submit draft", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	h.metrics.DraftSubmitted()
	h.log.Info("draft submitted", zap.String("draft_id", draft.ID), zap.String("category", draft.Category))
	h.notify(r.Context(), models.EventDraftSubmitted, draft.ID)
	httpjson.Write(w, http.StatusCreated, models.SubmitDraftResponse{
		Message: "Blog submitted successfully",
		DraftID: draft.ID,
	})
}

// writeMessage uses the public form's {"message": ...} error shape.
func writeMessage(w http.ResponseWriter, status int, msg, field string) {
	httpjson.Write(w, status, struct {
		Message string `json:"message"`
		Field   string `json:"field,omitempty"`
	}{Message: msg, Field: field})
}

// notify is best effort: the decision is already committed.
func (h *Handler) notify(ctx context.Context, typ models.EventType, id string) {
	ev := models.Event{Type: typ, ID: id, At: time.Now().UTC()}
	if err := h.events.Publish(ctx, ev); err != nil {
		h.log.Warn("publish moderation event", zap.String("type", string(typ)), zap.String("id", id), zap.Error(err))
	}
}

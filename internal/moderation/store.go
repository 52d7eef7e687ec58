package moderation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayush/blog-moderation/backend/internal/models"
)

// Store is the in-memory moderation queue. It is the only owner of the
// pending users, approved users and drafts; every accessor returns copies.
//
// A single lock covers all collections, so each operation (including the
// remove-then-append in ApproveUser) is atomic.
type Store struct {
	mu       sync.RWMutex
	pending  []models.PendingUser
	approved []models.PendingUser
	drafts   []models.BlogDraft

	now   func() time.Time
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now as the source of draft timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the draft id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// DraftFilter narrows ListDrafts. The zero value matches every draft.
type DraftFilter struct {
	Status models.DraftStatus
}

// Counts is a point-in-time summary of the queue sizes.
type Counts struct {
	PendingUsers   int `json:"pendingUsers"`
	ApprovedUsers  int `json:"approvedUsers"`
	PendingDrafts  int `json:"pendingDrafts"`
	ApprovedDrafts int `json:"approvedDrafts"`
	RejectedDrafts int `json:"rejectedDrafts"`
}

// NewStore builds a store from seed. The seed is copied.
func NewStore(seed Seed, opts ...Option) *Store {
	s := &Store{
		pending:  append([]models.PendingUser(nil), seed.Users...),
		approved: append([]models.PendingUser(nil), seed.Approved...),
		drafts:   append([]models.BlogDraft(nil), seed.Drafts...),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return "b_" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListPendingUsers returns the users awaiting a decision, oldest insert first.
func (s *Store) ListPendingUsers(_ context.Context) []models.PendingUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.PendingUser{}, s.pending...)
}

// ListApprovedUsers returns the users moved out of pending by ApproveUser.
func (s *Store) ListApprovedUsers(_ context.Context) []models.PendingUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.PendingUser{}, s.approved...)
}

// ApproveUser checks code against the pending user's reference code and, on a
// match, moves the user to the approved collection with every field intact.
func (s *Store) ApproveUser(_ context.Context, id, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.pendingIndex(id)
	if idx < 0 {
		return fmt.Errorf("approve user %q: %w", id, ErrUserNotFound)
	}
	if !s.verifyLocked(id, code) {
		return fmt.Errorf("approve user %q: %w", id, ErrInvalidCode)
	}

	user := s.pending[idx]
	s.pending = append(s.pending[:idx], s.pending[idx+1:]...)
	s.approved = append(s.approved, user)
	return nil
}

// RejectUser drops the user from the pending queue. Nothing is retained.
func (s *Store) RejectUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.pendingIndex(id)
	if idx < 0 {
		return fmt.Errorf("reject user %q: %w", id, ErrUserNotFound)
	}
	s.pending = append(s.pending[:idx], s.pending[idx+1:]...)
	return nil
}

// ListDrafts returns drafts matching f in insertion order.
func (s *Store) ListDrafts(_ context.Context, f DraftFilter) []models.BlogDraft {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.BlogDraft, 0, len(s.drafts))
	for _, d := range s.drafts {
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		out = append(out, d)
	}
	return out
}

// GetDraft looks up a draft by id. The bool is false when it does not exist.
func (s *Store) GetDraft(_ context.Context, id string) (models.BlogDraft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.draftIndex(id)
	if idx < 0 {
		return models.BlogDraft{}, false
	}
	return s.drafts[idx], true
}

// SubmitDraft validates req and appends a new pending draft with a fresh id.
func (s *Store) SubmitDraft(_ context.Context, req models.SubmitDraftRequest) (models.BlogDraft, error) {
	draft, err := ValidateSubmission(req)
	if err != nil {
		return models.BlogDraft{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	if id == "" || s.draftIndex(id) >= 0 {
		return models.BlogDraft{}, fmt.Errorf("submit draft: id %q unavailable: %w", id, ErrInternal)
	}

	now := s.now()
	draft.ID = id
	draft.SubmittedAt = now
	draft.UpdatedAt = now
	s.drafts = append(s.drafts, draft)
	return draft, nil
}

// PublishDraft marks a pending draft approved.
func (s *Store) PublishDraft(_ context.Context, id string) error {
	return s.transition("publish draft", id, models.DraftApproved)
}

// RejectDraft marks a pending draft rejected.
func (s *Store) RejectDraft(_ context.Context, id string) error {
	return s.transition("reject draft", id, models.DraftRejected)
}

// Removal describes a draft taken out of the store by DeleteDraft.
type Removal struct {
	Draft models.BlogDraft
	// CoverShared is true when a remaining draft names the same CoverImage.
	CoverShared bool
}

// DeleteDraft removes a draft regardless of its status.
func (s *Store) DeleteDraft(_ context.Context, id string) (Removal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.draftIndex(id)
	if idx < 0 {
		return Removal{}, fmt.Errorf("delete draft %q: %w", id, ErrDraftNotFound)
	}
	rm := Removal{Draft: s.drafts[idx]}
	s.drafts = append(s.drafts[:idx], s.drafts[idx+1:]...)
	if rm.Draft.CoverImage != "" {
		for i := range s.drafts {
			if s.drafts[i].CoverImage == rm.Draft.CoverImage {
				rm.CoverShared = true
				break
			}
		}
	}
	return rm, nil
}

// Counts summarizes the collection sizes.
func (s *Store) Counts(_ context.Context) Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := Counts{PendingUsers: len(s.pending), ApprovedUsers: len(s.approved)}
	for _, d := range s.drafts {
		switch d.Status {
		case models.DraftPending:
			c.PendingDrafts++
		case models.DraftApproved:
			c.ApprovedDrafts++
		case models.DraftRejected:
			c.RejectedDrafts++
		}
	}
	return c
}

func (s *Store) transition(op, id string, to models.DraftStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.draftIndex(id)
	if idx < 0 {
		return fmt.Errorf("%s %q: %w", op, id, ErrDraftNotFound)
	}
	d := &s.drafts[idx]
	if d.Status.Terminal() {
		return fmt.Errorf("%s %q (status %s): %w", op, id, d.Status, ErrDraftFinalized)
	}
	d.Status = to
	d.UpdatedAt = s.after(d.UpdatedAt)
	return nil
}

// after returns the current time, nudged forward so it is strictly later than
// prev even on coarse clocks.
func (s *Store) after(prev time.Time) time.Time {
	now := s.now()
	if !now.After(prev) {
		now = prev.Add(time.Nanosecond)
	}
	return now
}

func (s *Store) pendingIndex(id string) int {
	for i := range s.pending {
		if s.pending[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) draftIndex(id string) int {
	for i := range s.drafts {
		if s.drafts[i].ID == id {
			return i
		}
	}
	return -1
}

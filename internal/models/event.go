package models

import "time"

// EventType names a moderation decision broadcast to downstream consumers.
type EventType string

const (
	EventUserApproved   EventType = "user.approved"
	EventUserRejected   EventType = "user.rejected"
	EventDraftSubmitted EventType = "draft.submitted"
	EventDraftPublished EventType = "draft.published"
	EventDraftRejected  EventType = "draft.rejected"
	EventDraftDeleted   EventType = "draft.deleted"
)

// Event is the payload published after a successful moderation action.
// It carries ids only; consumers fetch details through the API.
type Event struct {
	Type EventType `json:"type"`
	ID   string    `json:"id"`
	At   time.Time `json:"at"`
}

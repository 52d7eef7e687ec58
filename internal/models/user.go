package models

import "time"

// PendingUser is a registration awaiting (or past) moderator review. The same
// record shape is kept in both the pending and the approved collections.
type PendingUser struct {
	ID       string    `json:"id"       yaml:"id"`
	Name     string    `json:"name"     yaml:"name"`
	Email    string    `json:"email"    yaml:"email"`
	JoinedAt time.Time `json:"joinedAt" yaml:"joinedAt"`
	// ReferenceCode is returned to the admin UI in plaintext (demo mode).
	ReferenceCode string `json:"referenceCode,omitempty" yaml:"referenceCode"`
}

// ApproveUserRequest is the JSON body for POST /api/admin/users/approve.
type ApproveUserRequest struct {
	ID            string `json:"id"`
	ReferenceCode string `json:"referenceCode"`
}

// IDRequest is the JSON body for actions that only carry a record id.
type IDRequest struct {
	ID string `json:"id"`
}

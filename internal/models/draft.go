package models

import "time"

// DraftStatus is the moderation state of a blog draft.
type DraftStatus string

const (
	DraftPending  DraftStatus = "pending"
	DraftApproved DraftStatus = "approved"
	DraftRejected DraftStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s DraftStatus) Valid() bool {
	switch s {
	case DraftPending, DraftApproved, DraftRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
func (s DraftStatus) Terminal() bool {
	return s == DraftApproved || s == DraftRejected
}

// BlogDraft is a blog submission held in the moderation queue.
type BlogDraft struct {
	ID          string      `json:"id"          yaml:"id"`
	Title       string      `json:"title"       yaml:"title"`
	Author      string      `json:"author"      yaml:"author"`
	Email       string      `json:"email"       yaml:"email"`
	Category    string      `json:"category"    yaml:"category"`
	Tags        string      `json:"tags"        yaml:"tags"`
	Excerpt     string      `json:"excerpt"     yaml:"excerpt"`
	Content     string      `json:"content"     yaml:"content"`
	CoverImage  string      `json:"coverImage"  yaml:"coverImage"`
	SubmittedAt time.Time   `json:"submittedAt" yaml:"submittedAt"`
	UpdatedAt   time.Time   `json:"updatedAt"   yaml:"updatedAt"`
	Status      DraftStatus `json:"status"      yaml:"status"`
}

// SubmitDraftRequest is the JSON body for POST /api/submit-blog.
//
// Tags and CoverImage are optional: a nil pointer means the field was absent
// and is stored as the empty string.
type SubmitDraftRequest struct {
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	Email      string  `json:"email"`
	Category   string  `json:"category"`
	Excerpt    string  `json:"excerpt"`
	Content    string  `json:"content"`
	Tags       *string `json:"tags,omitempty"`
	CoverImage *string `json:"coverImage,omitempty"`
}

// SubmitDraftResponse is returned with 201 after a successful submission.
type SubmitDraftResponse struct {
	Message string `json:"message"`
	DraftID string `json:"draftId"`
}

// CoverUploadResponse carries the object key to use as a draft's coverImage.
type CoverUploadResponse struct {
	CoverImage string `json:"coverImage"`
}

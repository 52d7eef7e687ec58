package moderation

import (
	"regexp"
	"strings"

	"github.com/ayush/blog-moderation/backend/internal/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateSubmission trims every field of req and checks the required ones.
// It returns a pending draft without id or timestamps.
//
// Absent optional fields (nil Tags / CoverImage) become "".
func ValidateSubmission(req models.SubmitDraftRequest) (models.BlogDraft, error) {
	d := models.BlogDraft{
		Title:      strings.TrimSpace(req.Title),
		Author:     strings.TrimSpace(req.Author),
		Email:      strings.TrimSpace(req.Email),
		Category:   strings.TrimSpace(req.Category),
		Excerpt:    strings.TrimSpace(req.Excerpt),
		Content:    strings.TrimSpace(req.Content),
		Tags:       optional(req.Tags),
		CoverImage: optional(req.CoverImage),
		Status:     models.DraftPending,
	}

	required := []struct {
		field string
		value string
	}{
		{"title", d.Title},
		{"author", d.Author},
		{"email", d.Email},
		{"category", d.Category},
		{"excerpt", d.Excerpt},
		{"content", d.Content},
	}
	for _, r := range required {
		if r.value == "" {
			return models.BlogDraft{}, &ValidationError{
				Field:   r.field,
				Message: "Missing required field: " + r.field,
			}
		}
	}

	// The raw value is checked, so padding around the address is rejected.
	if !emailPattern.MatchString(req.Email) {
		return models.BlogDraft{}, &ValidationError{Field: "email", Message: "Invalid email format"}
	}
	return d, nil
}

func optional(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

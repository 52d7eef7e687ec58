package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayush/blog-moderation/backend/internal/models"
)

func strPtr(s string) *string { return &s }

func TestValidateSubmission(t *testing.T) {
	base := func() models.SubmitDraftRequest {
		return models.SubmitDraftRequest{
			Title:    "Title",
			Author:   "Author",
			Email:    "author@example.com",
			Category: "News",
			Excerpt:  "Short",
			Content:  "Long",
		}
	}

	tests := []struct {
		name      string
		mutate    func(*models.SubmitDraftRequest)
		wantField string
	}{
		{name: "valid", mutate: func(*models.SubmitDraftRequest) {}},
		{name: "missing title", mutate: func(r *models.SubmitDraftRequest) { r.Title = "" }, wantField: "title"},
		{name: "blank author", mutate: func(r *models.SubmitDraftRequest) { r.Author = " \t" }, wantField: "author"},
		{name: "missing email", mutate: func(r *models.SubmitDraftRequest) { r.Email = "" }, wantField: "email"},
		{name: "missing category", mutate: func(r *models.SubmitDraftRequest) { r.Category = "" }, wantField: "category"},
		{name: "missing excerpt", mutate: func(r *models.SubmitDraftRequest) { r.Excerpt = "\n" }, wantField: "excerpt"},
		{name: "missing content", mutate: func(r *models.SubmitDraftRequest) { r.Content = "" }, wantField: "content"},
		{name: "first missing field wins", mutate: func(r *models.SubmitDraftRequest) { r.Content, r.Title = "", "" }, wantField: "title"},
		{name: "email without at", mutate: func(r *models.SubmitDraftRequest) { r.Email = "author.example.com" }, wantField: "email"},
		{name: "email without tld", mutate: func(r *models.SubmitDraftRequest) { r.Email = "author@example" }, wantField: "email"},
		{name: "email with inner space", mutate: func(r *models.SubmitDraftRequest) { r.Email = "au thor@example.com" }, wantField: "email"},
		{name: "email padded with spaces", mutate: func(r *models.SubmitDraftRequest) { r.Email = "  author@example.com  " }, wantField: "email"},
		{name: "optional fields present", mutate: func(r *models.SubmitDraftRequest) { r.Tags, r.CoverImage = strPtr("a"), strPtr("") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base()
			tt.mutate(&req)

			draft, err := ValidateSubmission(req)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, models.DraftPending, draft.Status)
				assert.Equal(t, "author@example.com", draft.Email)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.NotEmpty(t, verr.Error())
		})
	}
}

func TestValidateSubmissionOptionalDefaults(t *testing.T) {
	draft, err := ValidateSubmission(models.SubmitDraftRequest{
		Title: "t", Author: "a", Email: "a@b.co", Category: "c", Excerpt: "e", Content: "x",
	})
	require.NoError(t, err)
	assert.Equal(t, "", draft.Tags)
	assert.Equal(t, "", draft.CoverImage)
}

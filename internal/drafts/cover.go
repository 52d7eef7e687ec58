package drafts

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ayush/blog-moderation/backend/internal/httpjson"
	"github.com/ayush/blog-moderation/backend/internal/models"
	"github.com/ayush/blog-moderation/backend/internal/store"
)

const (
	coverPrefix = "covers/"
	// room for multipart headers on top of the image itself
	multipartOverhead = 64 << 10
)

var coverExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadCover stores the multipart "file" field and returns the key to send
// as coverImage when submitting the draft.
func (h *Handler) UploadCover(w http.ResponseWriter, r *http.Request) {
	if h.covers == nil {
		writeMessage(w, http.StatusServiceUnavailable, "Cover uploads are not configured", "")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.coverMaxBytes+multipartOverhead)
	file, _, err := r.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeMessage(w, http.StatusRequestEntityTooLarge, "Cover image too large", "file")
			return
		}
		writeMessage(w, http.StatusBadRequest, "A cover image file is required", "file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.coverMaxBytes+1))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Could not read cover image", "file")
		return
	}
	if int64(len(data)) > h.coverMaxBytes {
		writeMessage(w, http.StatusRequestEntityTooLarge,
			"Cover image exceeds "+strconv.FormatInt(h.coverMaxBytes, 10)+" bytes", "file")
		return
	}
	if len(data) == 0 {
		writeMessage(w, http.StatusBadRequest, "A cover image file is required", "file")
		return
	}

	contentType := http.DetectContentType(data)
	ext, ok := coverExtensions[contentType]
	if !ok {
		writeMessage(w, http.StatusUnsupportedMediaType, "Cover image must be PNG, JPEG, GIF or WebP", "file")
		return
	}

	key := coverPrefix + uuid.NewString() + ext
	if err := h.covers.Upload(r.Context(), key, data, contentType); err != nil {
		h.log.Error("cover upload", zap.String("key", key), zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	h.metrics.CoverUploaded()
	w.Header().Set("Location", "/api/"+key)
	httpjson.Write(w, http.StatusCreated, models.CoverUploadResponse{CoverImage: key})
}

// GetCover streams a stored cover image.
func (h *Handler) GetCover(w http.ResponseWriter, r *http.Request) {
	if h.covers == nil {
		http.NotFound(w, r)
		return
	}
	key := coverPrefix + chi.URLParam(r, "name")

	data, ct, err := h.covers.Download(r.Context(), key)
	if err != nil {
		if errors.Is(err, store.ErrObjectNotFound) {
			writeMessage(w, http.StatusNotFound, "Cover image not found", "")
			return
		}
		h.log.Error("cover download", zap.String("key", key), zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(data)
}

// removeCover drops an uploaded cover once its draft is gone. Covers that
// were not uploaded here, such as external URLs, are left alone.
func (h *Handler) removeCover(ctx context.Context, key string) {
	if h.covers == nil || !strings.HasPrefix(key, coverPrefix) {
		return
	}
	if err := h.covers.Remove(ctx, key); err != nil {
		h.log.Warn("cover remove", zap.String("key", key), zap.Error(err))
	}
}

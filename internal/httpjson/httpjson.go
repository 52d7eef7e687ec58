// Package httpjson holds the JSON response helpers shared by the handlers and
// the single mapping from moderation errors to HTTP status codes.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/ayush/blog-moderation/backend/internal/moderation"
)

// InvalidCodeMessage is shown to the admin so they can re-enter the code.
const InvalidCodeMessage = "Invalid reference code. Please check and try again."

// Failure is the body of every non-2xx admin response.
type Failure struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// OK is the confirmation body for admin actions.
type OK struct {
	OK bool `json:"ok"`
}

// Write writes v as JSON with the given status code.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Fail writes a Failure with the given status and message.
func Fail(w http.ResponseWriter, status int, msg string) {
	Write(w, status, Failure{Error: msg})
}

// Decode reads a JSON body into v. An empty body leaves v untouched.
func Decode(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// Status maps err to an HTTP status and a caller-safe message.
func Status(err error) (int, string) {
	var verr *moderation.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Message
	case errors.Is(err, moderation.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, moderation.ErrDraftNotFound):
		return http.StatusNotFound, "Draft not found"
	case errors.Is(err, moderation.ErrInvalidCode):
		return http.StatusBadRequest, InvalidCodeMessage
	case errors.Is(err, moderation.ErrDraftFinalized):
		return http.StatusConflict, "Draft already finalized"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// Error writes the Failure for err. Server-side errors are logged and their
// cause is never sent to the client.
func Error(w http.ResponseWriter, log *zap.Logger, err error) {
	status, msg := Status(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
	}
	body := Failure{Error: msg}
	var verr *moderation.ValidationError
	if errors.As(err, &verr) {
		body.Field = verr.Field
	}
	Write(w, status, body)
}

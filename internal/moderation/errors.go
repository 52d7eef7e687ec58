package moderation

import "errors"

var (
	// ErrUserNotFound is returned when an id is absent from the pending users.
	ErrUserNotFound = errors.New("user not found")
	// ErrDraftNotFound is returned when an id is absent from the drafts.
	ErrDraftNotFound = errors.New("draft not found")
	// ErrInvalidCode is returned when the supplied reference code does not
	// match the one stored on the pending user. The user stays pending.
	ErrInvalidCode = errors.New("invalid reference code")
	// ErrDraftFinalized is returned when publishing or rejecting a draft that
	// is already approved or rejected.
	ErrDraftFinalized = errors.New("draft already finalized")
	// ErrInternal marks failures that are not the caller's fault.
	ErrInternal = errors.New("internal store error")
)

// ValidationError reports the first submission field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

package apperrors

import "errors"

// Kind classifies a handled failure so the response layer can pick the
// right HTTP status without inspecting message strings.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindUnauthorized
	KindTooManyRequests
	KindInternal
)

// Error is a handled failure with a user-facing message. The underlying
// cause, if any, is kept for server-side logging and never rendered to the
// client.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

func Validation(msg string) *Error   { return &Error{Kind: KindValidation, Message: msg} }
func NotFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Error     { return &Error{Kind: KindConflict, Message: msg} }
func Unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }
func TooManyRequests(msg string) *Error {
	return &Error{Kind: KindTooManyRequests, Message: msg}
}

// Internal wraps an unexpected failure. msg is what the client sees; cause
// is what gets logged.
func Internal(msg string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Cause: cause}
}

// From extracts an *Error from err, or wraps err as an internal failure
// with the given fallback message.
func From(err error, fallback string) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(fallback, err)
}

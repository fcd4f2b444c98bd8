package core

import "github.com/pkg/errors"

var (
	// ErrConflict is returned by record stores when a write carries a stale
	// record version; the caller should reload and retry.
	ErrConflict = errors.New("record was modified by someone else")

	// ErrStoreUnavailable is returned when the backing record store cannot
	// be reached; the operation may be retried.
	ErrStoreUnavailable = errors.New("record store unavailable")
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}

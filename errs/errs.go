// Package errs defines the error kinds surfaced by the codec kit and client.
//
// Errors produced by this module wrap one of the sentinel kinds below, so
// callers classify failures with errors.Is:
//
//	if errors.Is(err, errs.ErrCorrupt) {
//	    // bad bytes, not a caller mistake
//	}
//
// The exception is a non-success server response: it is returned as a
// *StatusError carrying the status code, retrievable with errors.As, and
// wraps none of the sentinel kinds.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalid marks malformed caller input: empty column sets, unknown
	// codec/dtype pairs, out-of-range depths.
	ErrInvalid = errors.New("invalid input")

	// ErrCorrupt marks decoded data that violates a format invariant:
	// truncated streams, checksum mismatches, contradictory read responses.
	ErrCorrupt = errors.New("corrupt data or incorrect decoder")

	// ErrConnection marks transport failures that happened before any server
	// response was received.
	ErrConnection = errors.New("connection error")

	// ErrOther marks failures upcast from lower layers: request construction,
	// backend compression, JSON encoding and parsing. Invalid UTF-8 in string
	// atoms is reported as ErrCorrupt instead.
	ErrOther = errors.New("client-side error")
)

// Invalid returns an ErrInvalid-kinded error with a formatted message.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Corrupt returns an ErrCorrupt-kinded error with a formatted message.
func Corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorrupt, fmt.Sprintf(format, args...))
}

// Connection wraps a pre-response transport failure.
func Connection(err error) error {
	return fmt.Errorf("%w: %w", ErrConnection, err)
}

// Other wraps a lower-level failure as ErrOther, preserving the cause chain.
func Other(err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrOther, err)
}

// StatusError is a non-success server response.
type StatusError struct {
	// Status is the HTTP status code returned by the server.
	Status int
	// Body is the raw response body, kept for the error message.
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned HTTP %d: %s", e.Status, string(e.Body))
}

// IsNotFound reports whether err is a server NOT_FOUND response. Drop and get
// operations surface this as a recoverable "absent" signal.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusNotFound
}

package rebase

import "fmt"

// MalformedURIError indicates an artifact or local URI that cannot be parsed
// at all. Unlike a resolution miss this is a hard error: it points at a
// corrupt log rather than a file that merely moved.
type MalformedURIError struct {
	URI string
	Err error
}

// Error implements the error interface for MalformedURIError.
func (e *MalformedURIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed URI %q: %v", e.URI, e.Err)
	}
	return fmt.Sprintf("malformed URI %q", e.URI)
}

// Unwrap exposes the underlying parse error for errors.Is/As chains.
func (e *MalformedURIError) Unwrap() error {
	return e.Err
}

// NewMalformedURIError creates a MalformedURIError for the given URI.
func NewMalformedURIError(uri string, err error) error {
	return &MalformedURIError{URI: uri, Err: err}
}

package rates

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the transport layer: missing/invalid filter
// input maps to a client error, store failures to a server error.
type Kind string

const (
	KindMissingRequiredFilter Kind = "missing_required_filter"
	KindInvalidDateFormat     Kind = "invalid_date_format"
	KindStoreQueryFailed      Kind = "store_query_failed"
)

// Error carries a classified kind and the underlying cause.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the classification of err, or the empty Kind for errors
// that did not come out of this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

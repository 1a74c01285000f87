package query

import (
	"errors"
	"fmt"
)

var ErrMalformedFilter = errors.New("malformed filter")

// MalformedFilterError describes a filter or sort specification that cannot
// be applied. It matches ErrMalformedFilter with errors.Is.
type MalformedFilterError struct {
	Field  string
	Reason string
	Err    error
}

func (e *MalformedFilterError) Error() string {
	msg := "malformed filter"
	if e.Field != "" {
		msg = fmt.Sprintf("%s on field %q", msg, e.Field)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedFilterError) Unwrap() error {
	return e.Err
}

func (e *MalformedFilterError) Is(target error) bool {
	return target == ErrMalformedFilter
}

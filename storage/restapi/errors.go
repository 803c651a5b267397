package restapi

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies an API call failure.
type Kind int

const (
	KindTransport Kind = iota + 1 // the request did not complete
	KindStatus                    // non-2xx HTTP status
	KindFailure                   // envelope `success: false`
	KindMalformed                 // response is not the expected shape
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindFailure:
		return "failure"
	case KindMalformed:
		return "malformed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is returned by every Client call that fails. Message is meant for humans.
type Error struct {
	Kind       Kind
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of `err`, or 0 if `err` is not an *Error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

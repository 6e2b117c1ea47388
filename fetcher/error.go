package fetcher

import (
	"errors"
	"fmt"
)

// ErrorKind classifies fetch failures
type ErrorKind int

const (
	// NotFound means the static file does not exist
	NotFound ErrorKind = iota + 1
	// Unreadable means the file exists but could not be read
	Unreadable
	// MalformedJSON means the content is not valid JSON
	MalformedJSON
	// Upstream means the remote host answered with a non success status
	Upstream
	// Transport means the remote host could not be reached
	Transport
)

// String returns kind name, used as a metric label
func (k ErrorKind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case Unreadable:
		return "unreadable"
	case MalformedJSON:
		return "malformed_json"
	case Upstream:
		return "upstream"
	case Transport:
		return "transport"
	}
	return "error"
}

// Error represents a fetch failure
type Error struct {
	Kind     ErrorKind
	Location string
	Status   int
	Err      error
}

func (e *Error) Error() string {
	switch e.Kind {
	case NotFound:
		return fmt.Sprintf("%v: not found", e.Location)
	case Upstream:
		return fmt.Sprintf("%v: unexpected status %d", e.Location, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%v: %v: %v", e.Location, e.Kind, e.Err)
	}
	return fmt.Sprintf("%v: %v", e.Location, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound returns true if err reports a missing static file
func IsNotFound(err error) bool {
	var fetchErr *Error
	if errors.As(err, &fetchErr) {
		return fetchErr.Kind == NotFound
	}
	return false
}

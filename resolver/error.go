package resolver

import "fmt"

// ErrorKind classifies resolution failures
type ErrorKind int

const (
	MethodNotFound ErrorKind = iota + 1
	InvalidParams
)

// Error represents a resolution failure; Field names the offending parameter for InvalidParams.
type Error struct {
	Kind    ErrorKind
	Method  string
	Field   string
	Message string
}

func (e *Error) Error() string {
	switch e.Kind {
	case MethodNotFound:
		return fmt.Sprintf("method: %v not found", e.Method)
	default:
		if e.Message == "" {
			return fmt.Sprintf("invalid params: %v", e.Field)
		}
		return fmt.Sprintf("invalid params: %v: %v", e.Field, e.Message)
	}
}

func newMethodNotFound(method string) *Error {
	return &Error{Kind: MethodNotFound, Method: method}
}

func newInvalidParams(method, field, message string) *Error {
	return &Error{Kind: InvalidParams, Method: method, Field: field, Message: message}
}

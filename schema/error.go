package schema

import "github.com/viant/jsonrpc"

const (
	ResourceNotFound = -32002
)

// NewResourceNotFound creates a resource/tool not found error carrying the resolved static path
func NewResourceNotFound(path string) *jsonrpc.Error {
	return jsonrpc.NewError(ResourceNotFound, "Resource not found", map[string]interface{}{"path": path})
}

// NewInvalidParam creates an invalid params error identifying the offending field
func NewInvalidParam(field, message string) *jsonrpc.Error {
	return jsonrpc.NewError(jsonrpc.InvalidParams, message, map[string]interface{}{"field": field})
}

// NewInternal creates a generic internal error; details stay in the server logs
func NewInternal() *jsonrpc.Error {
	return jsonrpc.NewInternalError("Internal error", nil)
}

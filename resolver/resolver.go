package resolver

import (
	"strings"

	"github.com/viant/staticmcp/schema"
)

// Location represents a static resource resolved for an MCP method call
type Location struct {
	Method string
	// Path is relative to the target base, always slash separated.
	Path string
	// Manifest is set for methods served from mcp.json.
	Manifest bool
	Tool     string
	URI      string
}

// Resolver maps MCP method calls onto static resource paths; it performs no I/O.
type Resolver struct {
	layout Layout
}

// Option configures a Resolver
type Option func(r *Resolver)

// WithLayout sets tools/call argument layout
func WithLayout(layout Layout) Option {
	return func(r *Resolver) {
		if layout != "" {
			r.layout = layout
		}
	}
}

// Layout returns configured argument layout
func (r *Resolver) Layout() Layout {
	return r.layout
}

// Resolve returns static location for the supplied method and params
func (r *Resolver) Resolve(method string, params map[string]interface{}) (*Location, error) {
	switch method {
	case schema.MethodInitialize, schema.MethodToolsList, schema.MethodResourcesList:
		return &Location{Method: method, Path: schema.ManifestFile, Manifest: true}, nil
	case schema.MethodToolsCall:
		return r.resolveToolCall(params)
	case schema.MethodResourcesRead:
		return r.resolveResourceRead(params)
	}
	return nil, newMethodNotFound(method)
}

func (r *Resolver) resolveToolCall(params map[string]interface{}) (*Location, error) {
	method := schema.MethodToolsCall
	rawName, ok := params["name"]
	if !ok || rawName == nil {
		return nil, newInvalidParams(method, "name", "tool name is required")
	}
	name, ok := rawName.(string)
	if !ok || name == "" {
		return nil, newInvalidParams(method, "name", "tool name has to be a non-empty string")
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return nil, newInvalidParams(method, "name", "tool name can not contain path segments")
	}
	rawArgs, ok := params["arguments"]
	if !ok || rawArgs == nil {
		return nil, newInvalidParams(method, "arguments", "arguments are required")
	}
	args, ok := rawArgs.(map[string]interface{})
	if !ok {
		return nil, newInvalidParams(method, "arguments", "arguments have to be an object")
	}
	path, err := r.layout.toolPath(name, args)
	if err != nil {
		return nil, newInvalidParams(method, "arguments", err.Error())
	}
	return &Location{Method: method, Path: path, Tool: name}, nil
}

func (r *Resolver) resolveResourceRead(params map[string]interface{}) (*Location, error) {
	method := schema.MethodResourcesRead
	rawURI, ok := params["uri"]
	if !ok || rawURI == nil {
		return nil, newInvalidParams(method, "uri", "uri is required")
	}
	URI, ok := rawURI.(string)
	if !ok || URI == "" {
		return nil, newInvalidParams(method, "uri", "uri has to be a non-empty string")
	}
	name, err := resourceName(URI)
	if err != nil {
		return nil, newInvalidParams(method, "uri", err.Error())
	}
	return &Location{Method: method, Path: "resources/" + name + ".json", URI: URI}, nil
}

// New creates a resolver
func New(options ...Option) *Resolver {
	ret := &Resolver{layout: LayoutHash}
	for _, option := range options {
		option(ret)
	}
	return ret
}

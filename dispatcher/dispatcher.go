package dispatcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/viant/jsonrpc"
	protoschema "github.com/viant/mcp-protocol/schema"
	"github.com/viant/staticmcp/fetcher"
	"github.com/viant/staticmcp/internal/logging"
	"github.com/viant/staticmcp/metrics"
	"github.com/viant/staticmcp/resolver"
	"github.com/viant/staticmcp/schema"
	"github.com/viant/staticmcp/session"
)

// Dispatcher translates MCP JSON-RPC requests into static content lookups
type Dispatcher struct {
	resolver        *resolver.Resolver
	fetcher         fetcher.Fetcher
	logger          *slog.Logger
	metrics         *metrics.Recorder
	info            protoschema.Implementation
	protocolVersion string
	instructions    *string
}

// Dispatch handles request in the context of aSession and returns its response
func (d *Dispatcher) Dispatch(ctx context.Context, aSession *session.Session, request *jsonrpc.Request) *jsonrpc.Response {
	response := &jsonrpc.Response{Jsonrpc: jsonrpc.Version, Id: request.Id}
	d.Serve(ctx, aSession, request, response)
	return response
}

// Serve handles request and sets either response result or response error
func (d *Dispatcher) Serve(ctx context.Context, aSession *session.Session, request *jsonrpc.Request, response *jsonrpc.Response) {
	started := time.Now()
	method := request.Method
	outcome := "ok"
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("dispatch panic", "method", method, "sessionId", aSession.ID, "panic", r, "stack", string(debug.Stack()))
			response.Result = nil
			response.Error = schema.NewInternal()
			outcome = "panic"
		}
		d.metrics.ObserveRequest(method, outcome)
		d.logger.Debug("dispatched", "method", method, "sessionId", aSession.ID, "outcome", outcome, "elapsed", time.Since(started))
	}()
	if request.Jsonrpc != jsonrpc.Version {
		response.Error = jsonrpc.NewInvalidRequest("invalid JSON-RPC version", nil)
		outcome = "invalid_request"
		return
	}
	if method == schema.MethodPing {
		response.Result = json.RawMessage(`{}`)
		return
	}
	params, err := decodeParams(request.Params)
	if err != nil {
		response.Error = schema.NewInvalidParam("params", err.Error())
		outcome = "invalid_params"
		return
	}
	location, err := d.resolver.Resolve(method, params)
	if err != nil {
		var resolutionErr *resolver.Error
		if errors.As(err, &resolutionErr) && resolutionErr.Kind == resolver.MethodNotFound {
			response.Error = jsonrpc.NewMethodNotFound(fmt.Sprintf("method: %v not found", method), nil)
			method, outcome = "unknown", "method_not_found"
			return
		}
		field := "params"
		if resolutionErr != nil {
			field = resolutionErr.Field
		}
		response.Error = schema.NewInvalidParam(field, err.Error())
		outcome = "invalid_params"
		return
	}
	result, err := d.execute(ctx, aSession, location)
	if err != nil {
		if fetcher.IsNotFound(err) {
			response.Error = schema.NewResourceNotFound(location.Path)
			outcome = "not_found"
			return
		}
		d.logger.Error("failed to serve static content", "method", method, "sessionId", aSession.ID, "target", aSession.Target.String(), "path", location.Path, "error", err)
		response.Error = schema.NewInternal()
		outcome = "internal_error"
		return
	}
	response.Result = result
}

func (d *Dispatcher) execute(ctx context.Context, aSession *session.Session, location *resolver.Location) (json.RawMessage, error) {
	if location.Manifest {
		manifest, err := d.Manifest(ctx, aSession)
		if err != nil {
			return nil, err
		}
		switch location.Method {
		case schema.MethodInitialize:
			return json.Marshal(d.initializeResult(manifest))
		case schema.MethodToolsList:
			return json.Marshal(&listToolsResult{Tools: manifest.ListTools()})
		default:
			return json.Marshal(&listResourcesResult{Resources: manifest.ListResources()})
		}
	}
	data, err := d.fetcher.Fetch(ctx, aSession.Target, location.Path)
	if err != nil {
		return nil, err
	}
	switch location.Method {
	case schema.MethodToolsCall:
		return shapeToolResult(data)
	default:
		return shapeResourceResult(location.URI, data)
	}
}

// Manifest returns session manifest, loading it from the session target when not cached
func (d *Dispatcher) Manifest(ctx context.Context, aSession *session.Session) (*schema.Manifest, error) {
	return aSession.Manifest(ctx, func(ctx context.Context) (*schema.Manifest, error) {
		data, err := d.fetcher.Fetch(ctx, aSession.Target, schema.ManifestFile)
		if err != nil {
			return nil, err
		}
		return schema.ParseManifest(data)
	})
}

// Capabilities returns capabilities advertised by the bridge
func (d *Dispatcher) Capabilities() protoschema.ServerCapabilities {
	return protoschema.ServerCapabilities{
		Tools:     &protoschema.ServerCapabilitiesTools{},
		Resources: &protoschema.ServerCapabilitiesResources{},
	}
}

// Layout returns tools/call argument layout
func (d *Dispatcher) Layout() resolver.Layout {
	return d.resolver.Layout()
}

// ProtocolVersion returns protocol version reported on initialize
func (d *Dispatcher) ProtocolVersion() string {
	return d.protocolVersion
}

// Implementation returns bridge implementation info
func (d *Dispatcher) Implementation() protoschema.Implementation {
	return d.info
}

func (d *Dispatcher) initializeResult(manifest *schema.Manifest) *protoschema.InitializeResult {
	return &protoschema.InitializeResult{
		ProtocolVersion: d.protocolVersion,
		Capabilities:    d.Capabilities(),
		ServerInfo:      manifest.Implementation(d.info),
		Instructions:    d.instructions,
	}
}

func decodeParams(raw json.RawMessage) (map[string]interface{}, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return map[string]interface{}{}, nil
	}
	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()
	var params map[string]interface{}
	if err := decoder.Decode(&params); err != nil {
		return nil, fmt.Errorf("params have to be an object")
	}
	return params, nil
}

// New creates a dispatcher
func New(options ...Option) *Dispatcher {
	ret := &Dispatcher{
		info:            protoschema.Implementation{Name: DefaultName, Version: DefaultVersion},
		protocolVersion: protoschema.LatestProtocolVersion,
	}
	for _, option := range options {
		option(ret)
	}
	if ret.resolver == nil {
		ret.resolver = resolver.New()
	}
	if ret.logger == nil {
		ret.logger = logging.Nop()
	}
	if ret.fetcher == nil {
		ret.fetcher = fetcher.New(fetcher.WithLogger(ret.logger), fetcher.WithMetrics(ret.metrics))
	}
	return ret
}

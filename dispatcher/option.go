package dispatcher

import (
	"log/slog"

	protoschema "github.com/viant/mcp-protocol/schema"
	"github.com/viant/staticmcp/fetcher"
	"github.com/viant/staticmcp/metrics"
	"github.com/viant/staticmcp/resolver"
)

const (
	DefaultName    = "staticmcp-bridge"
	DefaultVersion = "0.1.0"
)

// Option represents dispatcher option
type Option func(d *Dispatcher)

// WithResolver sets path resolver
func WithResolver(aResolver *resolver.Resolver) Option {
	return func(d *Dispatcher) {
		d.resolver = aResolver
	}
}

// WithFetcher sets content fetcher
func WithFetcher(aFetcher fetcher.Fetcher) Option {
	return func(d *Dispatcher) {
		d.fetcher = aFetcher
	}
}

// WithLogger sets logger
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithMetrics sets metrics recorder
func WithMetrics(recorder *metrics.Recorder) Option {
	return func(d *Dispatcher) {
		d.metrics = recorder
	}
}

// WithImplementation sets implementation info used when the manifest has no serverInfo
func WithImplementation(implementation protoschema.Implementation) Option {
	return func(d *Dispatcher) {
		d.info = implementation
	}
}

// WithProtocolVersion sets protocol version reported on initialize
func WithProtocolVersion(version string) Option {
	return func(d *Dispatcher) {
		if version != "" {
			d.protocolVersion = version
		}
	}
}

// WithInstructions sets initialize instructions
func WithInstructions(instructions string) Option {
	return func(d *Dispatcher) {
		if instructions != "" {
			d.instructions = &instructions
		}
	}
}

package staticmcp

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/viant/afs"
	protoschema "github.com/viant/mcp-protocol/schema"
	"github.com/viant/staticmcp/dispatcher"
	"github.com/viant/staticmcp/endpoint"
	"github.com/viant/staticmcp/fetcher"
	"github.com/viant/staticmcp/internal/logging"
	"github.com/viant/staticmcp/metrics"
	"github.com/viant/staticmcp/resolver"
	"github.com/viant/staticmcp/server"
	"gopkg.in/yaml.v3"
)

// ServerOptions defines options for configuring a StaticMCP bridge.
type ServerOptions struct {
	Name            string            `yaml:"name" json:"name"`
	Version         string            `yaml:"version" json:"version"`
	ProtocolVersion string            `yaml:"protocol" json:"protocol"`
	Instructions    string            `yaml:"instructions" json:"instructions"`
	Mode            endpoint.Mode     `yaml:"mode" json:"mode"`
	Source          string            `yaml:"source" json:"source"`
	TargetParams    []string          `yaml:"targetParams" json:"targetParams"`
	Layout          resolver.Layout   `yaml:"layout" json:"layout"`
	Fetch           *FetchOptions     `yaml:"fetch" json:"fetch"`
	Transport       *TransportOptions `yaml:"transport" json:"transport"`
	Logging         *LoggingOptions   `yaml:"logging" json:"logging"`
	Metrics         bool              `yaml:"metrics" json:"metrics"`
}

// FetchOptions configures static content retrieval
type FetchOptions struct {
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`
	MaxBodySize int64         `yaml:"maxBodySize" json:"maxBodySize"`
}

// TransportOptions configures HTTP endpoints
type TransportOptions struct {
	Port           int           `yaml:"port" json:"port"`
	Host           string        `yaml:"host" json:"host"`
	SSEURI         string        `yaml:"sseURI" json:"sseURI"`
	SSEMessageURI  string        `yaml:"sseMessageURI" json:"sseMessageURI"`
	StreamableURI  string        `yaml:"streamableURI" json:"streamableURI"`
	MetricsURI     string        `yaml:"metricsURI" json:"metricsURI"`
	KeepAlive      time.Duration `yaml:"keepAlive" json:"keepAlive"`
	MaxRequestSize int64         `yaml:"maxRequestSize" json:"maxRequestSize"`
	Cors           *server.Cors  `yaml:"cors" json:"cors"`
}

// LoggingOptions configures logging
type LoggingOptions struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// Addr returns listen address
func (t *TransportOptions) Addr() string {
	if t == nil || t.Port == 0 {
		return ""
	}
	return fmt.Sprintf("%v:%v", t.Host, t.Port)
}

// Logger creates logger for the configured level and format
func (o *ServerOptions) Logger() *slog.Logger {
	cfg := logging.Config{Level: slog.LevelInfo, Format: logging.FormatText}
	if o.Logging != nil {
		cfg.Level = logging.ParseLevel(o.Logging.Level)
		cfg.Format = logging.ParseFormat(o.Logging.Format)
	}
	return logging.New(cfg)
}

// Validate checks options consistency
func (o *ServerOptions) Validate() error {
	switch o.Mode {
	case endpoint.ModeFixed:
		if strings.TrimSpace(o.Source) == "" {
			return fmt.Errorf("source is required in %v mode", o.Mode)
		}
	case endpoint.ModeDynamic:
		if o.Source != "" {
			return fmt.Errorf("source is not supported in %v mode", o.Mode)
		}
	default:
		return fmt.Errorf("unsupported mode: %q", o.Mode)
	}
	if _, err := resolver.ParseLayout(string(o.Layout)); err != nil {
		return err
	}
	return nil
}

// LoadServerOptions loads YAML options from a local path or any afs supported URL
func LoadServerOptions(ctx context.Context, URL string) (*ServerOptions, error) {
	if !strings.Contains(URL, "://") {
		if abs, err := filepath.Abs(URL); err == nil {
			URL = abs
		}
	}
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	ret := &ServerOptions{}
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	return ret, nil
}

// NewServer creates a StaticMCP bridge server with the given options.
func NewServer(options *ServerOptions, logger *slog.Logger) (*server.Server, error) {
	if options == nil {
		return nil, fmt.Errorf("server options were nil")
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = options.Logger()
	}

	var strategy endpoint.Strategy
	switch options.Mode {
	case endpoint.ModeFixed:
		fixed, err := endpoint.NewFixed(options.Source)
		if err != nil {
			return nil, err
		}
		strategy = fixed
	default:
		strategy = endpoint.NewDynamic(options.TargetParams...)
	}

	var recorder *metrics.Recorder
	if options.Metrics {
		recorder = metrics.New()
	}

	fetcherOptions := []fetcher.Option{fetcher.WithLogger(logger), fetcher.WithMetrics(recorder)}
	if fetch := options.Fetch; fetch != nil {
		fetcherOptions = append(fetcherOptions, fetcher.WithTimeout(fetch.Timeout), fetcher.WithMaxBodySize(fetch.MaxBodySize))
	}
	layout, _ := resolver.ParseLayout(string(options.Layout))

	dispatcherOptions := []dispatcher.Option{
		dispatcher.WithLogger(logger),
		dispatcher.WithMetrics(recorder),
		dispatcher.WithFetcher(fetcher.New(fetcherOptions...)),
		dispatcher.WithResolver(resolver.New(resolver.WithLayout(layout))),
		dispatcher.WithProtocolVersion(options.ProtocolVersion),
		dispatcher.WithInstructions(options.Instructions),
	}
	if options.Name != "" || options.Version != "" {
		implementation := protoschema.Implementation{Name: dispatcher.DefaultName, Version: dispatcher.DefaultVersion}
		if options.Name != "" {
			implementation.Name = options.Name
		}
		if options.Version != "" {
			implementation.Version = options.Version
		}
		dispatcherOptions = append(dispatcherOptions, dispatcher.WithImplementation(implementation))
	}

	serverOptions := []server.Option{
		server.WithStrategy(strategy),
		server.WithLogger(logger),
		server.WithMetrics(recorder),
		server.WithDispatcher(dispatcher.New(dispatcherOptions...)),
	}
	if transport := options.Transport; transport != nil {
		if addr := transport.Addr(); addr != "" {
			serverOptions = append(serverOptions, server.WithAddr(addr))
		}
		if transport.SSEURI != "" {
			serverOptions = append(serverOptions, server.WithSSEURI(transport.SSEURI))
		}
		if transport.SSEMessageURI != "" {
			serverOptions = append(serverOptions, server.WithMessageURI(transport.SSEMessageURI))
		}
		if transport.StreamableURI != "" {
			serverOptions = append(serverOptions, server.WithStreamableURI(transport.StreamableURI))
		}
		if transport.MetricsURI != "" {
			serverOptions = append(serverOptions, server.WithMetricsURI(transport.MetricsURI))
		}
		if transport.KeepAlive > 0 {
			serverOptions = append(serverOptions, server.WithKeepAlive(transport.KeepAlive))
		}
		if transport.MaxRequestSize > 0 {
			serverOptions = append(serverOptions, server.WithMaxRequestSize(transport.MaxRequestSize))
		}
		if transport.Cors != nil {
			serverOptions = append(serverOptions, server.WithCORS(transport.Cors))
		}
	}
	return server.New(serverOptions...)
}

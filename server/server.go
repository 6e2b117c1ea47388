package server

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/viant/jsonrpc/transport"
	"github.com/viant/staticmcp/dispatcher"
	"github.com/viant/staticmcp/endpoint"
	"github.com/viant/staticmcp/internal/logging"
	"github.com/viant/staticmcp/metrics"
	"github.com/viant/staticmcp/session"
)

const (
	DefaultKeepAlive      = 25 * time.Second
	DefaultMaxRequestSize = 4 * 1024 * 1024
)

// Server represents the StaticMCP bridge: it binds connections to targets and
// streams dispatcher responses back to clients.
type Server struct {
	strategy   endpoint.Strategy
	dispatcher *dispatcher.Dispatcher
	sessions   *session.MemoryStore
	logger     *slog.Logger
	metrics    *metrics.Recorder

	keepAlive      time.Duration
	maxRequestSize int64

	directMu      sync.Mutex
	directSession *session.Session

	httpServer
}

// Strategy returns endpoint strategy
func (s *Server) Strategy() endpoint.Strategy {
	return s.strategy
}

// Dispatcher returns request dispatcher
func (s *Server) Dispatcher() *dispatcher.Dispatcher {
	return s.dispatcher
}

// Sessions returns live streaming sessions
func (s *Server) Sessions() *session.MemoryStore {
	return s.sessions
}

// NewHandler creates a transport handler bound to a new fixed target session
func (s *Server) NewHandler(_ context.Context, _ transport.Transport) transport.Handler {
	ret := &Handler{Server: s}
	target, err := s.strategy.Resolve(nil)
	if err != nil {
		ret.err = err
		return ret
	}
	ret.session = session.New(target)
	return ret
}

// direct returns the long-lived session used by fixed mode direct POST requests
func (s *Server) direct() (*session.Session, error) {
	s.directMu.Lock()
	defer s.directMu.Unlock()
	if s.directSession != nil {
		return s.directSession, nil
	}
	target, err := s.strategy.Resolve(nil)
	if err != nil {
		return nil, err
	}
	s.directSession = session.New(target, session.WithQueueSize(0))
	return s.directSession, nil
}

// Close closes all sessions
func (s *Server) Close() {
	s.sessions.Close()
	s.directMu.Lock()
	defer s.directMu.Unlock()
	if s.directSession != nil {
		s.directSession.Close()
	}
}

// New creates a new Server instance
func New(options ...Option) (*Server, error) {
	s := &Server{
		sessions:       session.NewMemoryStore(),
		keepAlive:      DefaultKeepAlive,
		maxRequestSize: DefaultMaxRequestSize,
		httpServer: httpServer{
			sseURI:        "/sse",
			sseMessageURI: "/message",
			streamableURI: "/mcp",
			metricsURI:    "/metrics",
		},
	}
	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}
	if s.strategy == nil {
		return nil, errors.New("no endpoint strategy specified")
	}
	if s.logger == nil {
		s.logger = logging.Nop()
	}
	if s.dispatcher == nil {
		s.dispatcher = dispatcher.New(dispatcher.WithLogger(s.logger), dispatcher.WithMetrics(s.metrics))
	}
	if s.corsHandler == nil {
		s.corsConfig = defaultCors()
		handler := &corsHandler{Cors: s.corsConfig}
		s.corsHandler = handler.Middleware
	}
	return s, nil
}

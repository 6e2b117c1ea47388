package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/viant/staticmcp/dispatcher"
	"github.com/viant/staticmcp/endpoint"
	"github.com/viant/staticmcp/metrics"
)

// Option is a function that configures the server.
type Option func(s *Server) error

// WithStrategy sets endpoint resolution strategy
func WithStrategy(strategy endpoint.Strategy) Option {
	return func(s *Server) error {
		s.strategy = strategy
		return nil
	}
}

// WithDispatcher sets request dispatcher
func WithDispatcher(aDispatcher *dispatcher.Dispatcher) Option {
	return func(s *Server) error {
		s.dispatcher = aDispatcher
		return nil
	}
}

// WithLogger sets logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		s.logger = logger
		return nil
	}
}

// WithMetrics sets metrics recorder, metrics are exposed on the metrics URI
func WithMetrics(recorder *metrics.Recorder) Option {
	return func(s *Server) error {
		s.metrics = recorder
		return nil
	}
}

// WithCORS adds a new CORS handler to the server.
func WithCORS(cors *Cors) Option {
	return func(s *Server) error {
		handler := &corsHandler{Cors: cors}
		s.corsConfig = cors
		s.corsHandler = handler.Middleware
		return nil
	}
}

// WithKeepAlive sets stream keepalive interval
func WithKeepAlive(interval time.Duration) Option {
	return func(s *Server) error {
		if interval <= 0 {
			return errors.New("keepalive interval has to be positive")
		}
		s.keepAlive = interval
		return nil
	}
}

// WithMaxRequestSize sets max JSON-RPC request body size
func WithMaxRequestSize(size int64) Option {
	return func(s *Server) error {
		if size > 0 {
			s.maxRequestSize = size
		}
		return nil
	}
}

// WithAddr sets listen address
func WithAddr(addr string) Option {
	return func(s *Server) error {
		s.addr = addr
		return nil
	}
}

// WithSSEURI sets stream connect URI
func WithSSEURI(URI string) Option {
	return func(s *Server) error {
		s.sseURI = URI
		return nil
	}
}

// WithMessageURI sets message post URI
func WithMessageURI(URI string) Option {
	return func(s *Server) error {
		s.sseMessageURI = URI
		return nil
	}
}

// WithStreamableURI sets streamable HTTP URI, fixed mode only; empty disables it
func WithStreamableURI(URI string) Option {
	return func(s *Server) error {
		s.streamableURI = URI
		return nil
	}
}

// WithMetricsURI sets metrics URI; empty disables it
func WithMetricsURI(URI string) Option {
	return func(s *Server) error {
		s.metricsURI = URI
		return nil
	}
}

// WithCustomHTTPHandler adds custom http handler
func WithCustomHTTPHandler(path string, handler http.HandlerFunc) Option {
	return func(s *Server) error {
		if s.customHTTPHandlers == nil {
			s.customHTTPHandlers = make(map[string]http.HandlerFunc)
		}
		s.customHTTPHandlers[path] = handler
		return nil
	}
}

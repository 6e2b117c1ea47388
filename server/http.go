package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/viant/jsonrpc/transport/server/http/streamable"
	"github.com/viant/staticmcp/endpoint"
)

var errNotFound = errors.New("not found")

type httpServer struct {
	streamingHandler   *streamable.Handler
	addr               string
	customHTTPHandlers map[string]http.HandlerFunc
	sseURI             string
	sseMessageURI      string
	streamableURI      string
	metricsURI         string
	corsConfig         *Cors
	corsHandler        Middleware
}

func (s *Server) streamableEnabled() bool {
	return s.streamableURI != "" && s.strategy.Mode() == endpoint.ModeFixed
}

// Handler returns bridge http handler with middleware applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	for path, handler := range s.customHTTPHandlers {
		mux.Handle(path, handler)
	}
	var middlewareHandlers []Middleware
	middlewareHandlers = append(middlewareHandlers, s.corsHandler)
	if s.corsConfig != nil {
		middlewareHandlers = append(middlewareHandlers, originValidationMiddleware(s.corsConfig.AllowOrigins))
	}
	mux.Handle(s.sseURI, ChainMiddlewareHandlers(http.HandlerFunc(s.handleSSE), middlewareHandlers...))
	mux.Handle(s.sseMessageURI, ChainMiddlewareHandlers(http.HandlerFunc(s.handleMessage), middlewareHandlers...))
	if s.streamableEnabled() {
		s.streamingHandler = streamable.New(s.NewHandler,
			streamable.WithURI(s.streamableURI),
		)
		streamMiddleware := append([]Middleware{protocolVersionMiddleware(s.dispatcher.ProtocolVersion())}, middlewareHandlers...)
		mux.Handle(s.streamableURI, ChainMiddlewareHandlers(s.streamingHandler, streamMiddleware...))
	}
	if s.metrics != nil && s.metricsURI != "" {
		mux.Handle(s.metricsURI, s.metrics.Handler())
	}
	mux.Handle("/", ChainMiddlewareHandlers(http.HandlerFunc(s.handleInfo), middlewareHandlers...))
	return mux
}

// HTTP creates and returns an HTTP server serving the bridge endpoints.
func (s *Server) HTTP(_ context.Context, addr string) *http.Server {
	if addr == "" {
		addr = s.addr
	}
	if addr == "" {
		addr = ":3000"
	}
	return &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
}

package fetcher

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/viant/afs"
	"github.com/viant/staticmcp/metrics"
)

// Option represents fetcher option
type Option func(s *Service)

// WithTimeout sets remote fetch timeout
func WithTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithHTTPClient sets http client used for remote targets; the fetch timeout still applies
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		s.client = client
	}
}

// WithMaxBodySize sets max static file size
func WithMaxBodySize(size int64) Option {
	return func(s *Service) {
		if size > 0 {
			s.maxBodySize = size
		}
	}
}

// WithFS sets storage service used for local targets
func WithFS(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithMetrics sets metrics recorder
func WithMetrics(recorder *metrics.Recorder) Option {
	return func(s *Service) {
		s.metrics = recorder
	}
}

// WithLogger sets logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/viant/afs"
	"github.com/viant/staticmcp/internal/logging"
	"github.com/viant/staticmcp/metrics"
)

const (
	// DefaultTimeout bounds a single remote fetch
	DefaultTimeout = 30 * time.Second
	// DefaultMaxBodySize bounds a single static file
	DefaultMaxBodySize = 32 * 1024 * 1024
)

// Fetcher retrieves static JSON documents relative to a target
type Fetcher interface {
	Fetch(ctx context.Context, target *Target, path string) (json.RawMessage, error)
}

// Service fetches from local or remote targets
type Service struct {
	timeout     time.Duration
	maxBodySize int64
	client      *http.Client
	fs          afs.Service
	metrics     *metrics.Recorder
	logger      *slog.Logger
	local       *local
	remote      *remote
}

// Fetch retrieves and validates a JSON document located at path relative to target base
func (s *Service) Fetch(ctx context.Context, target *Target, path string) (json.RawMessage, error) {
	if target == nil {
		return nil, fmt.Errorf("target was nil")
	}
	started := time.Now()
	var data []byte
	var location string
	var err error
	switch target.Kind {
	case Local:
		data, location, err = s.local.fetch(ctx, target.Base, path)
	case Remote:
		data, location, err = s.remote.fetch(ctx, target.Base, path)
	default:
		return nil, fmt.Errorf("unsupported target kind: %v", target.Kind)
	}
	if err == nil && !json.Valid(data) {
		err = &Error{Kind: MalformedJSON, Location: location}
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
		if fetchErr, ok := err.(*Error); ok {
			outcome = fetchErr.Kind.String()
		}
	}
	s.metrics.ObserveFetch(target.Kind.String(), outcome, time.Since(started))
	s.logger.Debug("fetched static content", "location", location, "outcome", outcome, "elapsed", time.Since(started))
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

// New creates a fetcher service
func New(options ...Option) *Service {
	ret := &Service{
		timeout:     DefaultTimeout,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, option := range options {
		option(ret)
	}
	if ret.client == nil {
		ret.client = &http.Client{Timeout: ret.timeout}
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	if ret.logger == nil {
		ret.logger = logging.Nop()
	}
	ret.local = &local{fs: ret.fs}
	ret.remote = &remote{client: ret.client, timeout: ret.timeout, maxBodySize: ret.maxBodySize}
	return ret
}

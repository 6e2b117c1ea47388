package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/viant/staticmcp/fetcher"
	"github.com/viant/staticmcp/schema"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultQueueSize bounds outbound events waiting for the stream writer
	DefaultQueueSize = 64
	manifestKey      = "manifest"
)

// Loader loads a manifest from the session target
type Loader func(ctx context.Context) (*schema.Manifest, error)

// Session represents a single client connection bound to one target
type Session struct {
	ID        string
	Target    *fetcher.Target
	CreatedAt time.Time

	mu       sync.RWMutex
	manifest *schema.Manifest
	group    singleflight.Group

	outbound chan []byte
	ctx      context.Context
	cancel   context.CancelFunc
}

// Manifest returns cached manifest or loads it; concurrent callers share a single
// in-flight load and failures are not cached.
func (s *Session) Manifest(ctx context.Context, load Loader) (*schema.Manifest, error) {
	if manifest := s.cached(); manifest != nil {
		return manifest, nil
	}
	value, err, _ := s.group.Do(manifestKey, func() (interface{}, error) {
		if manifest := s.cached(); manifest != nil {
			return manifest, nil
		}
		loadCtx, release := s.loadContext(ctx)
		manifest, err := load(loadCtx)
		release()
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.manifest == nil {
			s.manifest = manifest
		}
		return s.manifest, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*schema.Manifest), nil
}

// loadContext detaches a shared load from the caller's cancellation, the load
// stops only when the session closes.
func (s *Session) loadContext(ctx context.Context) (context.Context, func()) {
	loadCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stop := context.AfterFunc(s.ctx, cancel)
	return loadCtx, func() {
		stop()
		cancel()
	}
}

// Cached returns manifest if already loaded
func (s *Session) Cached() (*schema.Manifest, bool) {
	manifest := s.cached()
	return manifest, manifest != nil
}

func (s *Session) cached() *schema.Manifest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.manifest
}

// Deliver queues a payload for the stream writer, it returns false once the session is closed
func (s *Session) Deliver(payload []byte) bool {
	if s.Closed() {
		return false
	}
	select {
	case s.outbound <- payload:
		return true
	case <-s.ctx.Done():
		return false
	}
}

// Outbound returns queued payloads, it is never closed; select on Done as well
func (s *Session) Outbound() <-chan []byte {
	return s.outbound
}

// Done is closed once the session is closed
func (s *Session) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Context returns a context canceled when the session is closed
func (s *Session) Context() context.Context {
	return s.ctx
}

// Closed returns true once Close was called
func (s *Session) Closed() bool {
	return s.ctx.Err() != nil
}

// Close closes the session, it is safe to call multiple times
func (s *Session) Close() {
	s.cancel()
}

// Option represents session option
type Option func(s *Session)

// WithID sets session id
func WithID(id string) Option {
	return func(s *Session) {
		s.ID = id
	}
}

// WithQueueSize sets outbound queue size
func WithQueueSize(size int) Option {
	return func(s *Session) {
		if size >= 0 {
			s.outbound = make(chan []byte, size)
		}
	}
}

// New creates a session for the supplied target
func New(target *fetcher.Target, options ...Option) *Session {
	ret := &Session{
		ID:        uuid.NewString(),
		Target:    target,
		CreatedAt: time.Now(),
	}
	ret.ctx, ret.cancel = context.WithCancel(context.Background())
	for _, option := range options {
		option(ret)
	}
	if ret.outbound == nil {
		ret.outbound = make(chan []byte, DefaultQueueSize)
	}
	return ret
}

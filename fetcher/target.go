package fetcher

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Kind represents target storage kind
type Kind int

const (
	// Local targets are served from a filesystem (or any afs supported storage)
	Local Kind = iota + 1
	// Remote targets are served over http(s)
	Remote
)

// String returns kind name
func (k Kind) String() string {
	switch k {
	case Local:
		return "local"
	case Remote:
		return "remote"
	}
	return "unknown"
}

// Target represents a static MCP site root
type Target struct {
	Base string
	Kind Kind
}

// String returns target base
func (t *Target) String() string {
	return t.Base
}

// ParseTarget creates a target from a local path, storage URL or http(s) URL
func ParseTarget(location string) (*Target, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("target location was empty")
	}
	if isHTTP(location) {
		return NewRemoteTarget(location)
	}
	if strings.Contains(location, "://") {
		return &Target{Base: strings.TrimRight(location, "/"), Kind: Local}, nil
	}
	abs, err := filepath.Abs(location)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve target path %v: %w", location, err)
	}
	return &Target{Base: abs, Kind: Local}, nil
}

// NewRemoteTarget creates a remote target, only absolute http(s) URLs are accepted
func NewRemoteTarget(rawURL string) (*Target, error) {
	rawURL = strings.TrimSpace(rawURL)
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid target URL %v: %w", rawURL, err)
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("invalid target URL %v: unsupported scheme %q", rawURL, parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("invalid target URL %v: missing host", rawURL)
	}
	return &Target{Base: strings.TrimRight(rawURL, "/"), Kind: Remote}, nil
}

func isHTTP(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

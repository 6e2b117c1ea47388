// Package endpoint decides which static site a connection is bound to.
package endpoint

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/viant/staticmcp/fetcher"
)

var (
	// ErrMissingTarget is returned when dynamic mode receives no target parameter
	ErrMissingTarget = errors.New("missing target url parameter")
	// ErrInvalidTargetURL is returned when target parameter is not an absolute http(s) URL
	ErrInvalidTargetURL = errors.New("invalid target url")
)

// Mode represents bridge deployment mode
type Mode string

const (
	ModeFixed   Mode = "fixed"
	ModeDynamic Mode = "dynamic"
)

// Strategy resolves the target for a new connection from its query parameters
type Strategy interface {
	Resolve(query url.Values) (*fetcher.Target, error)
	Mode() Mode
}

// Fixed serves a single target configured at startup
type Fixed struct {
	target *fetcher.Target
}

// Resolve returns configured target, query parameters are ignored
func (f *Fixed) Resolve(url.Values) (*fetcher.Target, error) {
	return f.target, nil
}

func (f *Fixed) Mode() Mode {
	return ModeFixed
}

// NewFixed creates a fixed strategy for location (local path, storage URL or http(s) URL)
func NewFixed(location string) (*Fixed, error) {
	target, err := fetcher.ParseTarget(location)
	if err != nil {
		return nil, err
	}
	return &Fixed{target: target}, nil
}

// Dynamic binds each connection to the target named by its query parameters
type Dynamic struct {
	params []string
}

// Resolve returns remote target named by the first present parameter
func (d *Dynamic) Resolve(query url.Values) (*fetcher.Target, error) {
	var location string
	for _, param := range d.params {
		if location = strings.TrimSpace(query.Get(param)); location != "" {
			break
		}
	}
	if location == "" {
		return nil, ErrMissingTarget
	}
	target, err := fetcher.NewRemoteTarget(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTargetURL, err)
	}
	return target, nil
}

func (d *Dynamic) Mode() Mode {
	return ModeDynamic
}

// Params returns accepted parameter names
func (d *Dynamic) Params() []string {
	return d.params
}

// NewDynamic creates a dynamic strategy, params default to "url" and "target"
func NewDynamic(params ...string) *Dynamic {
	if len(params) == 0 {
		params = []string{"url", "target"}
	}
	return &Dynamic{params: params}
}

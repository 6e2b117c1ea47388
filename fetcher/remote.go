package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/viant/afs/url"
)

type remote struct {
	client      *http.Client
	timeout     time.Duration
	maxBodySize int64
}

func (r *remote) fetch(ctx context.Context, base, path string) ([]byte, string, error) {
	URL := url.Join(base, escapePath(path))
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, URL, nil)
	if err != nil {
		return nil, URL, &Error{Kind: Transport, Location: URL, Err: err}
	}
	request.Header.Set("Accept", "application/json")
	response, err := r.client.Do(request)
	if err != nil {
		return nil, URL, &Error{Kind: Transport, Location: URL, Err: err}
	}
	defer response.Body.Close()
	switch {
	case response.StatusCode == http.StatusNotFound:
		return nil, URL, &Error{Kind: NotFound, Location: URL, Status: response.StatusCode}
	case response.StatusCode < 200 || response.StatusCode >= 300:
		return nil, URL, &Error{Kind: Upstream, Location: URL, Status: response.StatusCode}
	}
	data, err := io.ReadAll(io.LimitReader(response.Body, r.maxBodySize+1))
	if err != nil {
		return nil, URL, &Error{Kind: Transport, Location: URL, Err: err}
	}
	if int64(len(data)) > r.maxBodySize {
		return nil, URL, &Error{Kind: Unreadable, Location: URL, Err: fmt.Errorf("body exceeds %d bytes", r.maxBodySize)}
	}
	return data, URL, nil
}

// escapePath escapes each path segment so resource names with spaces or
// reserved characters stay a single URL path segment.
func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		segments[i] = neturl.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}

package fetcher

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

type local struct {
	fs afs.Service
}

func (l *local) fetch(ctx context.Context, base, path string) ([]byte, string, error) {
	URL := url.Join(baseURL(base), path)
	exists, err := l.fs.Exists(ctx, URL)
	if err != nil {
		return nil, URL, &Error{Kind: Unreadable, Location: URL, Err: err}
	}
	if !exists {
		return nil, URL, &Error{Kind: NotFound, Location: URL}
	}
	data, err := l.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, URL, &Error{Kind: Unreadable, Location: URL, Err: err}
	}
	return data, URL, nil
}

func baseURL(base string) string {
	if strings.Contains(base, "://") {
		return base
	}
	return "file://" + filepath.ToSlash(base)
}

package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/staticmcp/metrics"
)

func writeFile(t *testing.T, base, path, content string) {
	location := filepath.Join(base, filepath.FromSlash(path))
	require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
	require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
}

func TestService_FetchLocal(t *testing.T) {
	base := t.TempDir()
	writeFile(t, base, "mcp.json", `{"serverInfo":{"name":"site","version":"1.0"}}`)
	writeFile(t, base, "resources/broken.json", `{"uri":`)

	target, err := ParseTarget(base)
	require.NoError(t, err)
	assert.Equal(t, Local, target.Kind)

	service := New()
	ctx := context.Background()

	data, err := service.Fetch(ctx, target, "mcp.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"serverInfo":{"name":"site","version":"1.0"}}`, string(data))

	_, err = service.Fetch(ctx, target, "tools/missing.json")
	assert.True(t, IsNotFound(err))

	_, err = service.Fetch(ctx, target, "resources/broken.json")
	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, MalformedJSON, fetchErr.Kind)
}

func TestService_FetchRemote(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.EscapedPath())
		switch r.URL.Path {
		case "/site/mcp.json":
			_, _ = w.Write([]byte(`{"tools":[]}`))
		case "/site/resources/my doc.json":
			_, _ = w.Write([]byte(`{"contents":[]}`))
		case "/site/tools/broken.json":
			w.WriteHeader(http.StatusInternalServerError)
		case "/site/tools/slow.json":
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(`{}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	target, err := ParseTarget(server.URL + "/site/")
	require.NoError(t, err)
	assert.Equal(t, Remote, target.Kind)
	assert.Equal(t, server.URL+"/site", target.Base)

	recorder := metrics.New()
	service := New(WithMetrics(recorder), WithTimeout(50*time.Millisecond))
	ctx := context.Background()

	data, err := service.Fetch(ctx, target, "mcp.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"tools":[]}`, string(data))

	_, err = service.Fetch(ctx, target, "resources/my doc.json")
	require.NoError(t, err)
	assert.Contains(t, paths, "/site/resources/my%20doc.json")

	_, err = service.Fetch(ctx, target, "tools/none.json")
	assert.True(t, IsNotFound(err))

	_, err = service.Fetch(ctx, target, "tools/broken.json")
	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, Upstream, fetchErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, fetchErr.Status)
	assert.False(t, IsNotFound(err))

	_, err = service.Fetch(ctx, target, "tools/slow.json")
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, Transport, fetchErr.Kind)
}

func TestService_FetchRemoteTimeoutWithCustomClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(300 * time.Millisecond):
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()
	target, err := NewRemoteTarget(server.URL)
	require.NoError(t, err)

	service := New(WithHTTPClient(&http.Client{}), WithTimeout(50*time.Millisecond))
	started := time.Now()
	_, err = service.Fetch(context.Background(), target, "mcp.json")
	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, Transport, fetchErr.Kind)
	assert.Less(t, time.Since(started), 250*time.Millisecond)
}

func TestService_FetchWithFS(t *testing.T) {
	fs := afs.New()
	ctx := context.Background()
	base := "file://" + filepath.ToSlash(t.TempDir())
	require.NoError(t, fs.Upload(ctx, base+"/resources/intro.json", 0o644, strings.NewReader(`{"uri":"file://intro","text":"hi"}`)))

	target, err := ParseTarget(base)
	require.NoError(t, err)
	assert.Equal(t, Local, target.Kind)

	service := New(WithFS(fs))
	data, err := service.Fetch(ctx, target, "resources/intro.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"uri":"file://intro","text":"hi"}`, string(data))

	_, err = service.Fetch(ctx, target, "resources/missing.json")
	assert.True(t, IsNotFound(err))
}

func TestService_FetchRemoteBodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"text":"0123456789"}`))
	}))
	defer server.Close()
	target, err := NewRemoteTarget(server.URL)
	require.NoError(t, err)
	_, err = New(WithMaxBodySize(8)).Fetch(context.Background(), target, "mcp.json")
	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, Unreadable, fetchErr.Kind)
}

func TestParseTarget(t *testing.T) {
	var testCases = []struct {
		description string
		location    string
		expectKind  Kind
		expectErr   bool
	}{
		{description: "https", location: "https://staticmcp.com/mcp", expectKind: Remote},
		{description: "http upper case", location: "HTTP://localhost:8080", expectKind: Remote},
		{description: "relative path", location: "./site", expectKind: Local},
		{description: "storage url", location: "mem://localhost/site", expectKind: Local},
		{description: "missing host", location: "https:///mcp", expectErr: true},
		{description: "empty", location: "  ", expectErr: true},
	}
	for _, testCase := range testCases {
		target, err := ParseTarget(testCase.location)
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		if !assert.NoError(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expectKind, target.Kind, testCase.description)
	}
	local, err := ParseTarget("./site")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(local.Base))

	_, err = NewRemoteTarget("ftp://example.com/site")
	assert.Error(t, err)
}

package staticmcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/staticmcp/endpoint"
	"github.com/viant/staticmcp/resolver"
)

func TestLoadServerOptions(t *testing.T) {
	location := filepath.Join(t.TempDir(), "bridge.yaml")
	require.NoError(t, os.WriteFile(location, []byte(`
name: docs-bridge
mode: fixed
source: ./site
layout: staticmcp
metrics: true
fetch:
  timeout: 5s
transport:
  port: 3100
  keepAlive: 10s
  cors:
    allowOrigins: ["https://app.example.com"]
logging:
  level: debug
  format: json
`), 0o644))

	options, err := LoadServerOptions(context.Background(), location)
	require.NoError(t, err)
	assert.Equal(t, "docs-bridge", options.Name)
	assert.Equal(t, endpoint.ModeFixed, options.Mode)
	assert.Equal(t, resolver.LayoutStaticMCP, options.Layout)
	assert.Equal(t, 5*time.Second, options.Fetch.Timeout)
	assert.Equal(t, 10*time.Second, options.Transport.KeepAlive)
	assert.Equal(t, ":3100", options.Transport.Addr())
	assert.Equal(t, []string{"https://app.example.com"}, options.Transport.Cors.AllowOrigins)
	assert.True(t, options.Metrics)
	assert.NoError(t, options.Validate())

	_, err = LoadServerOptions(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestServerOptions_Validate(t *testing.T) {
	var testCases = []struct {
		description string
		options     *ServerOptions
		expectErr   bool
	}{
		{description: "fixed", options: &ServerOptions{Mode: endpoint.ModeFixed, Source: "./site"}},
		{description: "fixed without source", options: &ServerOptions{Mode: endpoint.ModeFixed}, expectErr: true},
		{description: "dynamic", options: &ServerOptions{Mode: endpoint.ModeDynamic}},
		{description: "dynamic with source", options: &ServerOptions{Mode: endpoint.ModeDynamic, Source: "./site"}, expectErr: true},
		{description: "unknown mode", options: &ServerOptions{Mode: "proxy"}, expectErr: true},
		{description: "unknown layout", options: &ServerOptions{Mode: endpoint.ModeDynamic, Layout: "md5"}, expectErr: true},
	}
	for _, testCase := range testCases {
		err := testCase.options.Validate()
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		assert.NoError(t, err, testCase.description)
	}
}

func TestNewServer(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "mcp.json"), []byte(`{"tools":[{"name":"now"}]}`), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(base, "tools"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "tools", "now.json"), []byte(`{"time":"noon"}`), 0o644))

	srv, err := NewServer(&ServerOptions{
		Name:    "docs-bridge",
		Mode:    endpoint.ModeFixed,
		Source:  base,
		Layout:  resolver.LayoutStaticMCP,
		Metrics: true,
	}, nil)
	require.NoError(t, err)
	defer srv.Close()
	server := httptest.NewServer(srv.Handler())
	defer server.Close()

	response, err := http.Post(server.URL+"/sse", "application/json", strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"now","arguments":{}}}`))
	require.NoError(t, err)
	defer response.Body.Close()
	body := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(response.Body).Decode(&body))
	result := body["result"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"time": "noon"}, result["structuredContent"])

	info, err := http.Get(server.URL + "/")
	require.NoError(t, err)
	defer info.Body.Close()
	summary := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(info.Body).Decode(&summary))
	assert.Equal(t, "docs-bridge", summary["bridge"])

	_, err = NewServer(nil, nil)
	assert.Error(t, err)
}

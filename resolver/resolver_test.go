package resolver

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeParams(t *testing.T, text string) map[string]interface{} {
	decoder := json.NewDecoder(strings.NewReader(text))
	decoder.UseNumber()
	var params map[string]interface{}
	require.NoError(t, decoder.Decode(&params))
	return params
}

func sha256Hex(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func TestResolver_Resolve(t *testing.T) {
	var testCases = []struct {
		description string
		layout      Layout
		method      string
		params      string
		expectPath  string
		manifest    bool
		expectKind  ErrorKind
		expectField string
	}{
		{description: "initialize", method: "initialize", params: `{"protocolVersion":"2025-06-18"}`, expectPath: "mcp.json", manifest: true},
		{description: "tools list", method: "tools/list", params: `{}`, expectPath: "mcp.json", manifest: true},
		{description: "resources list", method: "resources/list", params: `{"cursor":"abc"}`, expectPath: "mcp.json", manifest: true},
		{description: "tool call hash", method: "tools/call", params: `{"name":"echo","arguments":{"x":1}}`, expectPath: "tools/echo/" + sha256Hex(`{"x":1}`) + ".json"},
		{description: "tool call empty args", method: "tools/call", params: `{"name":"now","arguments":{}}`, expectPath: "tools/now/" + sha256Hex(`{}`) + ".json"},
		{description: "tool call missing name", method: "tools/call", params: `{"arguments":{}}`, expectKind: InvalidParams, expectField: "name"},
		{description: "tool call empty name", method: "tools/call", params: `{"name":"","arguments":{}}`, expectKind: InvalidParams, expectField: "name"},
		{description: "tool call traversal name", method: "tools/call", params: `{"name":"../secret","arguments":{}}`, expectKind: InvalidParams, expectField: "name"},
		{description: "tool call missing arguments", method: "tools/call", params: `{"name":"echo"}`, expectKind: InvalidParams, expectField: "arguments"},
		{description: "tool call array arguments", method: "tools/call", params: `{"name":"echo","arguments":[1]}`, expectKind: InvalidParams, expectField: "arguments"},
		{description: "resource file uri", method: "resources/read", params: `{"uri":"file://docs/readme.md"}`, expectPath: "resources/docs/readme.md.json"},
		{description: "resource https uri", method: "resources/read", params: `{"uri":"https://staticmcp.com/mcp/guide"}`, expectPath: "resources/mcp/guide.json"},
		{description: "resource plain name", method: "resources/read", params: `{"uri":"intro.json"}`, expectPath: "resources/intro.json"},
		{description: "resource traversal", method: "resources/read", params: `{"uri":"file://../../etc/passwd"}`, expectKind: InvalidParams, expectField: "uri"},
		{description: "resource encoded traversal", method: "resources/read", params: `{"uri":"docs/%2e%2e/%2e%2e/secret"}`, expectKind: InvalidParams, expectField: "uri"},
		{description: "resource backslash traversal", method: "resources/read", params: `{"uri":"docs\\..\\secret"}`, expectKind: InvalidParams, expectField: "uri"},
		{description: "resource missing uri", method: "resources/read", params: `{}`, expectKind: InvalidParams, expectField: "uri"},
		{description: "resource numeric uri", method: "resources/read", params: `{"uri":12}`, expectKind: InvalidParams, expectField: "uri"},
		{description: "unknown method", method: "prompts/list", params: `{}`, expectKind: MethodNotFound},
		{description: "staticmcp no args", layout: LayoutStaticMCP, method: "tools/call", params: `{"name":"now","arguments":{}}`, expectPath: "tools/now.json"},
		{description: "staticmcp one arg", layout: LayoutStaticMCP, method: "tools/call", params: `{"name":"greet","arguments":{"who":"world"}}`, expectPath: "tools/greet/world.json"},
		{description: "staticmcp two args", layout: LayoutStaticMCP, method: "tools/call", params: `{"name":"add","arguments":{"b":2,"a":10}}`, expectPath: "tools/add/10/2.json"},
		{description: "staticmcp empty value", layout: LayoutStaticMCP, method: "tools/call", params: `{"name":"greet","arguments":{"who":""}}`, expectKind: InvalidParams, expectField: "arguments"},
		{description: "staticmcp empty second value", layout: LayoutStaticMCP, method: "tools/call", params: `{"name":"add","arguments":{"a":"","b":2}}`, expectKind: InvalidParams, expectField: "arguments"},
		{description: "staticmcp unsafe value", layout: LayoutStaticMCP, method: "tools/call", params: `{"name":"greet","arguments":{"who":"../x"}}`, expectKind: InvalidParams, expectField: "arguments"},
	}

	for _, testCase := range testCases {
		aResolver := New(WithLayout(testCase.layout))
		location, err := aResolver.Resolve(testCase.method, decodeParams(t, testCase.params))
		if testCase.expectKind != 0 {
			var resolutionErr *Error
			if !assert.ErrorAs(t, err, &resolutionErr, testCase.description) {
				continue
			}
			assert.Equal(t, testCase.expectKind, resolutionErr.Kind, testCase.description)
			assert.Equal(t, testCase.expectField, resolutionErr.Field, testCase.description)
			assert.Nil(t, location, testCase.description)
			continue
		}
		if !assert.NoError(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expectPath, location.Path, testCase.description)
		assert.Equal(t, testCase.manifest, location.Manifest, testCase.description)
	}
}

func TestResolver_ToolCallOrderIndependent(t *testing.T) {
	aResolver := New()
	orderings := []string{
		`{"name":"search","arguments":{"query":"go","limit":10,"filters":{"lang":"en","tags":["a","b"]}}}`,
		`{"arguments":{"limit":10,"filters":{"tags":["a","b"],"lang":"en"},"query":"go"},"name":"search"}`,
		`{"name":"search","arguments":{"filters":{"lang":"en","tags":["a","b"]},"query":"go","limit":1e1}}`,
	}
	var expected string
	for i, ordering := range orderings {
		location, err := aResolver.Resolve("tools/call", decodeParams(t, ordering))
		require.NoError(t, err)
		if i == 0 {
			expected = location.Path
			continue
		}
		assert.Equal(t, expected, location.Path)
	}
	assert.True(t, strings.HasPrefix(expected, "tools/search/"))
}

func TestCanonicalArguments(t *testing.T) {
	canonical, err := CanonicalArguments(map[string]interface{}{"b": "<x>", "a": json.Number("1.50")})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1.5,"b":"<x>"}`, string(canonical))

	canonical, err = CanonicalArguments(nil)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(canonical))
}

func TestParseLayout(t *testing.T) {
	layout, err := ParseLayout("")
	assert.NoError(t, err)
	assert.Equal(t, LayoutHash, layout)
	layout, err = ParseLayout("StaticMCP")
	assert.NoError(t, err)
	assert.Equal(t, LayoutStaticMCP, layout)
	_, err = ParseLayout("md5")
	assert.Error(t, err)
}

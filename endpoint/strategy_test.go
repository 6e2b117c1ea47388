package endpoint

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/staticmcp/fetcher"
)

func TestFixed_Resolve(t *testing.T) {
	strategy, err := NewFixed("https://staticmcp.com/mcp")
	require.NoError(t, err)
	target, err := strategy.Resolve(url.Values{"url": {"https://evil.example.com"}})
	require.NoError(t, err)
	assert.Equal(t, "https://staticmcp.com/mcp", target.Base)
	assert.Equal(t, fetcher.Remote, target.Kind)
	assert.Equal(t, ModeFixed, strategy.Mode())

	_, err = NewFixed("")
	assert.Error(t, err)
}

func TestDynamic_Resolve(t *testing.T) {
	var testCases = []struct {
		description string
		query       string
		expectBase  string
		expectErr   error
	}{
		{description: "url param", query: "url=https%3A%2F%2Fstaticmcp.com%2Fmcp", expectBase: "https://staticmcp.com/mcp"},
		{description: "target alias", query: "target=http://localhost:8080/site/", expectBase: "http://localhost:8080/site"},
		{description: "missing", query: "", expectErr: ErrMissingTarget},
		{description: "blank", query: "url=%20", expectErr: ErrMissingTarget},
		{description: "relative", query: "url=/etc/site", expectErr: ErrInvalidTargetURL},
		{description: "file scheme", query: "url=file:///etc/site", expectErr: ErrInvalidTargetURL},
		{description: "no host", query: "url=https://", expectErr: ErrInvalidTargetURL},
	}
	strategy := NewDynamic()
	for _, testCase := range testCases {
		query, err := url.ParseQuery(testCase.query)
		require.NoError(t, err, testCase.description)
		target, err := strategy.Resolve(query)
		if testCase.expectErr != nil {
			assert.ErrorIs(t, err, testCase.expectErr, testCase.description)
			assert.Nil(t, target, testCase.description)
			continue
		}
		if !assert.NoError(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expectBase, target.Base, testCase.description)
		assert.Equal(t, fetcher.Remote, target.Kind, testCase.description)
	}
}

package resolver

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gowebpki/jcs"
)

// Layout defines how tools/call arguments map onto a static file name.
type Layout string

const (
	// LayoutHash names the file after sha256 of the RFC 8785 canonical JSON of the arguments.
	LayoutHash Layout = "hash"
	// LayoutStaticMCP follows the value based naming produced by StaticMCP generators.
	LayoutStaticMCP Layout = "staticmcp"
)

// ParseLayout returns a layout for the supplied name
func ParseLayout(name string) (Layout, error) {
	switch Layout(strings.ToLower(name)) {
	case "", LayoutHash:
		return LayoutHash, nil
	case LayoutStaticMCP:
		return LayoutStaticMCP, nil
	}
	return "", fmt.Errorf("unsupported argument layout: %v", name)
}

// CanonicalArguments returns the canonical JSON encoding of tool arguments:
// lexicographically sorted keys, no insignificant whitespace, normalized numbers.
func CanonicalArguments(args map[string]interface{}) ([]byte, error) {
	if args == nil {
		args = map[string]interface{}{}
	}
	data, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}
	return jcs.Transform(data)
}

// ArgumentsHash returns the hex encoded sha256 of the canonical arguments.
func ArgumentsHash(args map[string]interface{}) (string, error) {
	canonical, err := CanonicalArguments(args)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

func (l Layout) toolPath(name string, args map[string]interface{}) (string, error) {
	toolDir := "tools/" + name
	switch l {
	case LayoutStaticMCP:
		return staticMCPPath(toolDir, args)
	default:
		hash, err := ArgumentsHash(args)
		if err != nil {
			return "", err
		}
		return toolDir + "/" + hash + ".json", nil
	}
}

func staticMCPPath(toolDir string, args map[string]interface{}) (string, error) {
	switch len(args) {
	case 0:
		return toolDir + ".json", nil
	case 1:
		for _, value := range args {
			segment, err := pathSegment(value)
			if err != nil {
				return "", err
			}
			return toolDir + "/" + segment + ".json", nil
		}
	case 2:
		var values []string
		for _, value := range args {
			segment, err := pathSegment(value)
			if err != nil {
				return "", err
			}
			values = append(values, segment)
		}
		sort.Strings(values)
		return toolDir + "/" + values[0] + "/" + values[1] + ".json", nil
	}
	keys := make([]string, 0, len(args))
	for key := range args {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		value, err := valueText(args[key])
		if err != nil {
			return "", err
		}
		pairs = append(pairs, key+"="+value)
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(strings.Join(pairs, "&")))
	encoded = strings.NewReplacer("/", "_", "+", "_", "=", "_").Replace(encoded)
	return toolDir + "/" + encoded + ".json", nil
}

func pathSegment(value interface{}) (string, error) {
	text, err := valueText(value)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("argument value can not be empty")
	}
	if text == "." || text == ".." || strings.ContainsAny(text, `/\`) {
		return "", fmt.Errorf("argument value %q is not a valid path segment", text)
	}
	return text, nil
}

func valueText(value interface{}) (string, error) {
	switch actual := value.(type) {
	case string:
		return actual, nil
	case json.Number:
		return actual.String(), nil
	case bool:
		return strconv.FormatBool(actual), nil
	case float64:
		return strconv.FormatFloat(actual, 'f', -1, 64), nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

package resolver

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var errTraversal = errors.New("uri can not contain '..' segments")

// resourceName strips scheme (and host for http/https) from a resource uri
// and rejects anything that could leave the resources directory.
func resourceName(URI string) (string, error) {
	name := URI
	if index := strings.Index(name, "://"); index != -1 {
		scheme := strings.ToLower(name[:index])
		switch scheme {
		case "http", "https":
			parsed, err := url.Parse(URI)
			if err != nil {
				return "", fmt.Errorf("malformed uri: %w", err)
			}
			name = parsed.EscapedPath()
		default:
			name = name[index+3:]
		}
	}
	if hasTraversal(name) {
		return "", errTraversal
	}
	unescaped, err := url.PathUnescape(name)
	if err != nil {
		return "", fmt.Errorf("malformed uri: %w", err)
	}
	if hasTraversal(unescaped) {
		return "", errTraversal
	}
	name = strings.TrimLeft(unescaped, "/")
	name = strings.TrimSuffix(name, ".json")
	if name == "" {
		return "", errors.New("uri does not name a resource")
	}
	return name, nil
}

func hasTraversal(candidate string) bool {
	segments := strings.FieldsFunc(candidate, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	for _, segment := range segments {
		if segment == ".." {
			return true
		}
	}
	return false
}

package dispatcher

import (
	"bytes"
	"encoding/json"

	protoschema "github.com/viant/mcp-protocol/schema"
)

const jsonMimeType = "application/json"

type listToolsResult struct {
	Tools []json.RawMessage `json:"tools"`
}

type listResourcesResult struct {
	Resources []json.RawMessage `json:"resources"`
}

type singleResourceResult struct {
	Contents []json.RawMessage `json:"contents"`
}

// textResourceContents is a text only resource content item, it never carries blob
type textResourceContents struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text"`
}

// shapeToolResult passes through documents that already carry content or contents,
// anything else becomes a single text content item.
func shapeToolResult(data json.RawMessage) (json.RawMessage, error) {
	fields := objectFields(data)
	if _, ok := fields["content"]; ok {
		return data, nil
	}
	if _, ok := fields["contents"]; ok {
		return data, nil
	}
	text, err := pretty(data)
	if err != nil {
		return nil, err
	}
	result := &protoschema.CallToolResult{
		Content: []protoschema.CallToolResultContentElem{
			protoschema.TextContent{Type: "text", Text: text},
		},
	}
	if fields != nil {
		structured := map[string]interface{}{}
		if err := json.Unmarshal(data, &structured); err == nil {
			result.StructuredContent = structured
		}
	}
	return json.Marshal(result)
}

// shapeResourceResult passes through ReadResourceResult documents, wraps a single
// {uri, text} document, and renders anything else as JSON text.
func shapeResourceResult(URI string, data json.RawMessage) (json.RawMessage, error) {
	fields := objectFields(data)
	if _, ok := fields["contents"]; ok {
		return data, nil
	}
	if isResourceContent(fields) {
		return json.Marshal(&singleResourceResult{Contents: []json.RawMessage{data}})
	}
	text, err := pretty(data)
	if err != nil {
		return nil, err
	}
	content, err := json.Marshal(&textResourceContents{URI: URI, MimeType: jsonMimeType, Text: text})
	if err != nil {
		return nil, err
	}
	return json.Marshal(&singleResourceResult{Contents: []json.RawMessage{content}})
}

func isResourceContent(fields map[string]json.RawMessage) bool {
	if fields == nil {
		return false
	}
	var URI, text string
	if err := json.Unmarshal(fields["uri"], &URI); err != nil || URI == "" {
		return false
	}
	return json.Unmarshal(fields["text"], &text) == nil
}

// objectFields returns top level fields, nil when data is not an object
func objectFields(data json.RawMessage) map[string]json.RawMessage {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil
	}
	return fields
}

func pretty(data json.RawMessage) (string, error) {
	buffer := new(bytes.Buffer)
	if err := json.Indent(buffer, data, "", "  "); err != nil {
		return "", err
	}
	return buffer.String(), nil
}

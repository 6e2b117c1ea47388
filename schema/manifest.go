package schema

import (
	"encoding/json"
	"fmt"

	protoschema "github.com/viant/mcp-protocol/schema"
)

// ManifestFile is the static manifest location relative to a target base.
const ManifestFile = "mcp.json"

type (
	// Manifest represents a parsed mcp.json document. Tool and resource entries
	// are kept verbatim, in manifest order.
	Manifest struct {
		ServerInfo   *ServerInfo           `json:"serverInfo,omitempty"`
		Tools        []json.RawMessage     `json:"tools,omitempty"`
		Resources    []json.RawMessage     `json:"resources,omitempty"`
		Capabilities *ManifestCapabilities `json:"capabilities,omitempty"`
	}

	// ServerInfo identifies the static site; version is optional in generated manifests.
	ServerInfo struct {
		Name    string `json:"name"`
		Version string `json:"version,omitempty"`
	}

	// ManifestCapabilities is the nested layout emitted by older StaticMCP generators.
	ManifestCapabilities struct {
		Tools     []json.RawMessage `json:"tools,omitempty"`
		Resources []json.RawMessage `json:"resources,omitempty"`
	}
)

// Implementation returns server info as protocol implementation, fallback is used when the manifest has no name.
func (m *Manifest) Implementation(fallback protoschema.Implementation) protoschema.Implementation {
	if m.ServerInfo == nil || m.ServerInfo.Name == "" {
		return fallback
	}
	ret := protoschema.Implementation{Name: m.ServerInfo.Name, Version: m.ServerInfo.Version}
	if ret.Version == "" {
		ret.Version = fallback.Version
	}
	return ret
}

// ListTools returns manifest tools, never nil.
func (m *Manifest) ListTools() []json.RawMessage {
	if len(m.Tools) > 0 {
		return m.Tools
	}
	if m.Capabilities != nil && len(m.Capabilities.Tools) > 0 {
		return m.Capabilities.Tools
	}
	return []json.RawMessage{}
}

// ListResources returns manifest resources, never nil.
func (m *Manifest) ListResources() []json.RawMessage {
	if len(m.Resources) > 0 {
		return m.Resources
	}
	if m.Capabilities != nil && len(m.Capabilities.Resources) > 0 {
		return m.Capabilities.Resources
	}
	return []json.RawMessage{}
}

// ParseManifest decodes mcp.json content
func ParseManifest(data []byte) (*Manifest, error) {
	ret := &Manifest{}
	if err := json.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to parse %v: %w", ManifestFile, err)
	}
	return ret, nil
}

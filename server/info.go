package server

import (
	"net/http"

	"github.com/viant/staticmcp/endpoint"
	"github.com/viant/staticmcp/fetcher"
	"github.com/viant/staticmcp/resolver"
	"github.com/viant/staticmcp/schema"
)

type (
	info struct {
		Bridge    string            `json:"bridge"`
		Version   string            `json:"version"`
		Type      endpoint.Mode     `json:"type"`
		Layout    resolver.Layout   `json:"layout"`
		Target    string            `json:"target,omitempty"`
		Manifest  *manifestSummary  `json:"manifest,omitempty"`
		Endpoints map[string]string `json:"endpoints"`
		Usage     string            `json:"usage"`
		Sessions  int               `json:"sessions"`
	}

	manifestSummary struct {
		ServerInfo *schema.ServerInfo `json:"serverInfo,omitempty"`
		Tools      int                `json:"tools"`
		Resources  int                `json:"resources"`
		Error      string             `json:"error,omitempty"`
	}
)

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeError(w, http.StatusNotFound, errNotFound)
		return
	}
	implementation := s.dispatcher.Implementation()
	ret := &info{
		Bridge:    implementation.Name,
		Version:   implementation.Version,
		Type:      s.strategy.Mode(),
		Layout:    s.dispatcher.Layout(),
		Endpoints: s.endpoints(),
		Usage:     s.usage(),
		Sessions:  s.sessions.Count(),
	}
	if s.strategy.Mode() == endpoint.ModeFixed {
		ret.Manifest = &manifestSummary{}
		aSession, err := s.direct()
		if err == nil {
			ret.Target = s.targetInfo(aSession.Target)
			manifest, loadErr := s.dispatcher.Manifest(r.Context(), aSession)
			if loadErr == nil {
				ret.Manifest.ServerInfo = manifest.ServerInfo
				ret.Manifest.Tools = len(manifest.ListTools())
				ret.Manifest.Resources = len(manifest.ListResources())
			}
			err = loadErr
		}
		if err != nil {
			s.logger.Warn("manifest not loaded", "error", err)
			ret.Manifest.Error = "manifest not loaded"
		}
	}
	writeJSON(w, http.StatusOK, ret)
}

func (s *Server) endpoints() map[string]string {
	ret := map[string]string{
		"info":    "GET /",
		"stream":  "GET " + s.sseURI + s.targetQuery(),
		"message": "POST " + s.sseMessageURI + "?sessionId={sessionId}",
		"direct":  "POST " + s.sseURI + s.targetQuery(),
	}
	if s.streamableEnabled() {
		ret["streamable"] = "POST " + s.streamableURI
	}
	if s.metrics != nil && s.metricsURI != "" {
		ret["metrics"] = "GET " + s.metricsURI
	}
	return ret
}

func (s *Server) usage() string {
	if s.strategy.Mode() == endpoint.ModeDynamic {
		return "Point MCP client to " + s.sseURI + s.targetQuery() + ", where target is an http(s) StaticMCP site URL"
	}
	return "Point MCP client to " + s.sseURI
}

// targetQuery names the first query parameter the dynamic strategy accepts
func (s *Server) targetQuery() string {
	if s.strategy.Mode() != endpoint.ModeDynamic {
		return ""
	}
	param := "url"
	if dynamic, ok := s.strategy.(*endpoint.Dynamic); ok && len(dynamic.Params()) > 0 {
		param = dynamic.Params()[0]
	}
	return "?" + param + "={target}"
}

// targetInfo reports remote targets only, local paths stay private
func (s *Server) targetInfo(target *fetcher.Target) string {
	if target == nil || target.Kind != fetcher.Remote {
		return ""
	}
	return target.Base
}

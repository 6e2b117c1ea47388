package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/viant/jsonrpc"
	protoschema "github.com/viant/mcp-protocol/schema"
	"github.com/viant/staticmcp/endpoint"
	"github.com/viant/staticmcp/schema"
	"github.com/viant/staticmcp/session"
)

type readyParams struct {
	SessionId       string                         `json:"sessionId"`
	ProtocolVersion string                         `json:"protocolVersion"`
	Capabilities    protoschema.ServerCapabilities `json:"capabilities"`
	Target          string                         `json:"target,omitempty"`
}

type notification struct {
	Jsonrpc string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

type requestID struct {
	Id json.RawMessage `json:"id"`
}

type httpError struct {
	Error string `json:"error"`
	Usage string `json:"usage,omitempty"`
}

// handleSSE serves the stream endpoint: GET opens a stream, POST is a direct request/response call
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleStream(w, r)
	case http.MethodPost:
		s.handleDirect(w, r)
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
	default:
		w.Header().Set("Allow", "GET, POST, OPTIONS")
		s.writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %v not allowed", r.Method))
	}
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	target, err := s.strategy.Resolve(r.URL.Query())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	writer, err := newEventWriter(w)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	aSession := session.New(target)
	s.sessions.Put(aSession)
	s.metrics.SessionOpened()
	s.logger.Info("session opened", "sessionId", aSession.ID, "target", target.String())
	defer func() {
		s.sessions.Delete(aSession.ID)
		s.metrics.SessionClosed()
		s.logger.Info("session closed", "sessionId", aSession.ID, "duration", time.Since(aSession.CreatedAt))
	}()

	writer.writeHeaders()
	if err = writer.writeEvent(eventEndpoint, []byte(s.sseMessageURI+"?sessionId="+aSession.ID)); err != nil {
		return
	}
	ready, err := json.Marshal(&notification{
		Jsonrpc: jsonrpc.Version,
		Method:  schema.MethodReady,
		Params: &readyParams{
			SessionId:       aSession.ID,
			ProtocolVersion: s.dispatcher.ProtocolVersion(),
			Capabilities:    s.dispatcher.Capabilities(),
			Target:          s.targetInfo(target),
		},
	})
	if err != nil {
		s.logger.Error("failed to encode ready event", "error", err)
		return
	}
	if err = writer.writeEvent(eventReady, ready); err != nil {
		return
	}

	ticker := time.NewTicker(s.keepAlive)
	defer ticker.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-aSession.Done():
			return
		case payload := <-aSession.Outbound():
			if err = writer.writeEvent(eventMessage, payload); err != nil {
				s.logger.Debug("stream write failed", "sessionId", aSession.ID, "error", err)
				return
			}
		case <-ticker.C:
			if err = writer.writeComment("keepalive"); err != nil {
				return
			}
		}
	}
}

// handleMessage accepts a JSON-RPC message for a streaming session, the response is delivered on the stream
func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	default:
		w.Header().Set("Allow", "POST, OPTIONS")
		s.writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %v not allowed", r.Method))
		return
	}
	aSession, ok := s.sessions.Get(r.URL.Query().Get("sessionId"))
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Errorf("session not found"))
		return
	}
	body, err := s.readBody(r)
	if err != nil {
		s.writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)

	request, rpcErr := parseRequest(body)
	if rpcErr != nil {
		s.deliver(aSession, &jsonrpc.Response{Jsonrpc: jsonrpc.Version, Error: rpcErr})
		return
	}
	if isNotification(request) {
		s.logger.Debug("notification", "method", request.Method, "sessionId", aSession.ID)
		return
	}
	go func() {
		response := s.dispatcher.Dispatch(aSession.Context(), aSession, request)
		s.deliver(aSession, response)
	}()
}

// handleDirect serves a single JSON-RPC request with the response in the HTTP body
func (s *Server) handleDirect(w http.ResponseWriter, r *http.Request) {
	aSession, release, err := s.directSessionFor(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	defer release()
	body, err := s.readBody(r)
	if err != nil {
		s.writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}
	request, rpcErr := parseRequest(body)
	if rpcErr != nil {
		writeJSON(w, http.StatusOK, &jsonrpc.Response{Jsonrpc: jsonrpc.Version, Error: rpcErr})
		return
	}
	if isNotification(request) {
		w.WriteHeader(http.StatusAccepted)
		return
	}
	writeJSON(w, http.StatusOK, s.dispatcher.Dispatch(r.Context(), aSession, request))
}

// directSessionFor returns the shared direct session in fixed mode or an ephemeral one bound to the request target
func (s *Server) directSessionFor(r *http.Request) (*session.Session, func(), error) {
	if s.strategy.Mode() == endpoint.ModeFixed {
		aSession, err := s.direct()
		return aSession, func() {}, err
	}
	target, err := s.strategy.Resolve(r.URL.Query())
	if err != nil {
		return nil, nil, err
	}
	aSession := session.New(target, session.WithQueueSize(0))
	return aSession, aSession.Close, nil
}

func (s *Server) deliver(aSession *session.Session, response *jsonrpc.Response) {
	payload, err := json.Marshal(response)
	if err != nil {
		s.logger.Error("failed to encode response", "sessionId", aSession.ID, "error", err)
		return
	}
	if !aSession.Deliver(payload) {
		s.logger.Debug("session closed, response discarded", "sessionId", aSession.ID)
	}
}

func (s *Server) readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, s.maxRequestSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > s.maxRequestSize {
		return nil, fmt.Errorf("request exceeds %d bytes", s.maxRequestSize)
	}
	return body, nil
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	payload := &httpError{Error: err.Error()}
	if status == http.StatusBadRequest {
		payload.Usage = s.usage()
	}
	writeJSON(w, status, payload)
}

func parseRequest(body []byte) (*jsonrpc.Request, *jsonrpc.Error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return nil, jsonrpc.NewParsingError("invalid JSON-RPC message", nil)
	}
	request := &jsonrpc.Request{}
	if err := json.Unmarshal(body, request); err != nil {
		return nil, jsonrpc.NewParsingError(fmt.Sprintf("failed to parse request: %v", err), nil)
	}
	// ids are echoed byte for byte, numbers beyond float64 precision included
	envelope := &requestID{}
	if err := json.Unmarshal(body, envelope); err == nil && len(envelope.Id) > 0 && !bytes.Equal(envelope.Id, []byte("null")) {
		request.Id = envelope.Id
	}
	return request, nil
}

func isNotification(request *jsonrpc.Request) bool {
	return request.Id == nil && schema.IsNotification(request.Method)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

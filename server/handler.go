package server

import (
	"context"

	"github.com/viant/jsonrpc"
	"github.com/viant/staticmcp/schema"
	"github.com/viant/staticmcp/session"
)

// Handler serves JSON-RPC requests of a streamable HTTP transport session
type Handler struct {
	*Server
	session *session.Session
	err     error
}

// Serve handles incoming JSON-RPC requests
func (h *Handler) Serve(ctx context.Context, request *jsonrpc.Request, response *jsonrpc.Response) {
	if h.err != nil {
		h.logger.Error("streamable session without target", "error", h.err)
		response.Error = schema.NewInternal()
		return
	}
	response.Id = request.Id
	h.dispatcher.Serve(ctx, h.session, request, response)
}

// OnNotification handles incoming JSON-RPC notifications
func (h *Handler) OnNotification(ctx context.Context, notification *jsonrpc.Notification) {
	h.logger.Debug("notification", "method", notification.Method, "sessionId", h.sessionID())
}

func (h *Handler) sessionID() string {
	if h.session == nil {
		return ""
	}
	return h.session.ID
}

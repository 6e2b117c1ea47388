package server

import (
	"net/http"
)

var supportedProtocolVersions = map[string]bool{
	"2024-11-05": true,
	"2025-03-26": true,
	"2025-06-18": true,
}

// protocolVersionMiddleware validates MCP-Protocol-Version header and sets the
// response header to the bridge protocol version.
func protocolVersionMiddleware(version string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requested := r.Header.Get("MCP-Protocol-Version")
			if requested != "" && requested != version && !supportedProtocolVersions[requested] {
				http.Error(w, "invalid MCP-Protocol-Version", http.StatusBadRequest)
				return
			}
			w.Header().Set("MCP-Protocol-Version", version)
			next.ServeHTTP(w, r)
		})
	}
}

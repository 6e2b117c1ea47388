// Package server exposes the StaticMCP dispatcher over HTTP.
//
// It serves:
//   - GET  /sse       long-lived event stream bound to one target session
//   - POST /message   requests correlated to a stream by the sessionId query parameter
//   - POST /sse       direct request/response without a stream
//   - /mcp            streamable HTTP transport (fixed mode only)
//   - /metrics        prometheus metrics when a recorder is configured
//   - /               informational payload
//
// Callers construct a server via `server.New` with an endpoint strategy:
//
//	s, _ := server.New(server.WithStrategy(endpoint.NewDynamic()))
//	log.Fatal(s.HTTP(ctx, ":3000").ListenAndServe())
package server

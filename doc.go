// Package staticmcp provides a bridge that serves pre-rendered StaticMCP sites
// to MCP clients over HTTP/SSE.
//
// A StaticMCP site is a directory tree (local or behind an http(s) base URL) with
// an mcp.json manifest, resources/{name}.json documents and tools/{name}/...json
// pre-computed tool results. The bridge resolves each JSON-RPC request to one of
// those files, fetches it and wraps it as the MCP result.
//
// Two deployment modes are supported:
//
//   - fixed: the site is configured at startup
//   - dynamic: each client names the site with the url query parameter
//
// Example:
//
//	srv, err := staticmcp.NewServer(&staticmcp.ServerOptions{
//		Mode:   endpoint.ModeFixed,
//		Source: "./my-static-mcp",
//	}, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	log.Fatal(srv.HTTP(context.Background(), ":3000").ListenAndServe())
package staticmcp

// Package dispatcher serves MCP methods from static content.
//
// Each request is resolved to a static path, fetched from the session target and
// shaped into the MCP result for its method. Manifest methods (initialize,
// tools/list, resources/list) go through the session manifest cache; tools/call
// and resources/read fetch on every request. Fetch failures other than a missing
// file are reported to the client as a generic internal error and logged with
// full detail.
package dispatcher

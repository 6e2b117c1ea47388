// Package bridge implements the command line entry point shared by the
// sse-fixed and sse-dynamic binaries.
//
// Usage:
//
//	sse-fixed <DATA_PATH> [PORT]
//	sse-dynamic [PORT]
//
// Every flag can also be set with a STATICMCP_ prefixed environment variable,
// and --config loads a yaml file whose values the flags override.
package bridge

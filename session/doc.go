// Package session holds per-connection state: the bound target, the lazily
// loaded manifest and the outbound queue drained by the stream writer.
package session

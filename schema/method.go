package schema

import "strings"

const (
	MethodInitialize    = "initialize"
	MethodPing          = "ping"
	MethodResourcesList = "resources/list"
	MethodResourcesRead = "resources/read"
	MethodToolsList     = "tools/list"
	MethodToolsCall     = "tools/call"

	MethodNotificationPrefix = "notifications/"

	// MethodReady is emitted once on a freshly opened SSE stream.
	MethodReady = "ready"
)

// IsNotification returns true for client notifications that never get a response.
func IsNotification(method string) bool {
	return strings.HasPrefix(method, MethodNotificationPrefix)
}

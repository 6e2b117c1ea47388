// Command sse-fixed serves a single StaticMCP site, local directory or http(s)
// base URL, over SSE.
package main

import (
	"log"
	"os"

	"github.com/viant/staticmcp/bridge"
	"github.com/viant/staticmcp/endpoint"
)

func main() {
	if err := bridge.Run(os.Args[1:], endpoint.ModeFixed); err != nil {
		log.Fatal(err)
	}
}

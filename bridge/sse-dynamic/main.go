// Command sse-dynamic serves any remote StaticMCP site named by the client with
// the url query parameter.
package main

import (
	"log"
	"os"

	"github.com/viant/staticmcp/bridge"
	"github.com/viant/staticmcp/endpoint"
)

func main() {
	if err := bridge.Run(os.Args[1:], endpoint.ModeDynamic); err != nil {
		log.Fatal(err)
	}
}

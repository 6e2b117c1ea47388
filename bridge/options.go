package bridge

import (
	"fmt"
	"strconv"
	"time"

	"github.com/viant/staticmcp"
	"github.com/viant/staticmcp/endpoint"
	"github.com/viant/staticmcp/resolver"
)

// Options represents bridge command line options
type Options struct {
	ConfigURL    string        `short:"c" long:"config" env:"STATICMCP_CONFIG" description:"yaml config file or URL"`
	Layout       string        `short:"l" long:"layout" env:"STATICMCP_LAYOUT" description:"tool result layout (hash|staticmcp)"`
	Host         string        `long:"host" env:"STATICMCP_HOST" description:"listen host"`
	Port         int           `short:"p" long:"port" env:"STATICMCP_PORT" description:"listen port"`
	Timeout      time.Duration `short:"t" long:"timeout" env:"STATICMCP_TIMEOUT" description:"remote fetch timeout"`
	TargetParams []string      `long:"target-param" env:"STATICMCP_TARGET_PARAM" env-delim:"," description:"query parameter naming the target (dynamic mode)"`
	LogLevel     string        `long:"log-level" env:"STATICMCP_LOG_LEVEL" description:"log level (debug|info|warn|error)"`
	LogFormat    string        `long:"log-format" env:"STATICMCP_LOG_FORMAT" description:"log format (text|json|dev)"`
	Metrics      bool          `long:"metrics" env:"STATICMCP_METRICS" description:"expose prometheus metrics"`
	Positional   struct {
		Args []string `positional-arg-name:"SOURCE [PORT]"`
	} `positional-args:"yes"`
}

// DefaultPort is used when neither flag, config nor positional port is given
const DefaultPort = 3000

// ServerOptions merges the optional config file with command line overrides
func (o *Options) ServerOptions(base *staticmcp.ServerOptions, mode endpoint.Mode) (*staticmcp.ServerOptions, error) {
	ret := base
	if ret == nil {
		ret = &staticmcp.ServerOptions{}
	}
	ret.Mode = mode
	args := o.Positional.Args
	switch mode {
	case endpoint.ModeFixed:
		if len(args) > 0 {
			ret.Source = args[0]
			args = args[1:]
		}
	case endpoint.ModeDynamic:
	default:
		return nil, fmt.Errorf("unsupported mode: %q", mode)
	}
	if len(args) > 1 {
		return nil, fmt.Errorf("unexpected arguments: %v", args[1:])
	}
	if ret.Transport == nil {
		ret.Transport = &staticmcp.TransportOptions{}
	}
	if len(args) == 1 {
		port, err := strconv.Atoi(args[0])
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("invalid port: %q", args[0])
		}
		ret.Transport.Port = port
	}
	if o.Port != 0 {
		ret.Transport.Port = o.Port
	}
	if ret.Transport.Port == 0 {
		ret.Transport.Port = DefaultPort
	}
	if o.Host != "" {
		ret.Transport.Host = o.Host
	}
	if o.Layout != "" {
		ret.Layout = resolver.Layout(o.Layout)
	}
	if o.Timeout > 0 {
		if ret.Fetch == nil {
			ret.Fetch = &staticmcp.FetchOptions{}
		}
		ret.Fetch.Timeout = o.Timeout
	}
	if len(o.TargetParams) > 0 {
		ret.TargetParams = o.TargetParams
	}
	if o.LogLevel != "" || o.LogFormat != "" {
		if ret.Logging == nil {
			ret.Logging = &staticmcp.LoggingOptions{}
		}
		if o.LogLevel != "" {
			ret.Logging.Level = o.LogLevel
		}
		if o.LogFormat != "" {
			ret.Logging.Format = o.LogFormat
		}
	}
	if o.Metrics {
		ret.Metrics = true
	}
	return ret, ret.Validate()
}

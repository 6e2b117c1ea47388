package server

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	AllowOriginHeader      = "Access-Control-Allow-Origin"
	AllowHeadersHeader     = "Access-Control-Allow-Headers"
	AllowMethodsHeader     = "Access-Control-Allow-Methods"
	RequestMethodHeader    = "Access-Control-Request-Method"
	RequestHeadersHeader   = "Access-Control-Request-Headers"
	AllowCredentialsHeader = "Access-Control-Allow-Credentials"
	ExposeHeadersHeader    = "Access-Control-Expose-Headers"
	MaxAgeHeader           = "Access-Control-Max-Age"
	Separator              = ", "
)

const (
	defaultAllowHeaders  = "Content-Type, Accept, Authorization, Mcp-Session-Id, MCP-Protocol-Version, Last-Event-ID"
	defaultExposeHeaders = "Mcp-Session-Id, MCP-Protocol-Version"
)

// Cors represents CORS settings; "*" entries allow anything
type Cors struct {
	AllowCredentials *bool    `yaml:"allowCredentials,omitempty" json:"allowCredentials,omitempty"`
	AllowHeaders     []string `yaml:"allowHeaders,omitempty" json:"allowHeaders,omitempty"`
	AllowMethods     []string `yaml:"allowMethods,omitempty" json:"allowMethods,omitempty"`
	AllowOrigins     []string `yaml:"allowOrigins,omitempty" json:"allowOrigins,omitempty"`
	ExposeHeaders    []string `yaml:"exposeHeaders,omitempty" json:"exposeHeaders,omitempty"`
	MaxAge           *int64   `yaml:"maxAge,omitempty" json:"maxAge,omitempty"`
}

func (c *Cors) OriginMap() map[string]bool {
	var result = make(map[string]bool)
	for _, origin := range c.AllowOrigins {
		result[origin] = true
	}
	return result
}

// corsHandler is a handler that sets CORS headers and answers preflight requests
type corsHandler struct {
	*Cors
}

func (h *corsHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.Cors.setHeaders(w, r)
		if r.Method == http.MethodOptions && r.Header.Get(RequestMethodHeader) != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (c *Cors) setHeaders(writer http.ResponseWriter, request *http.Request) {
	if c == nil {
		return
	}
	header := writer.Header()
	origin := request.Header.Get("Origin")
	allowedOrigins := c.OriginMap()
	if allowedOrigins["*"] {
		if origin == "" || c.AllowCredentials == nil || !*c.AllowCredentials {
			header.Set(AllowOriginHeader, "*")
		} else {
			header.Set(AllowOriginHeader, origin)
			header.Add("Vary", "Origin")
		}
	} else if origin != "" && allowedOrigins[origin] {
		header.Set(AllowOriginHeader, origin)
		header.Add("Vary", "Origin")
	}
	if len(c.AllowMethods) > 0 {
		allowedMethods := strings.Join(c.AllowMethods, Separator)
		if allowedMethods == "*" {
			allowedMethods = "GET, POST, DELETE, OPTIONS"
		}
		header.Set(AllowMethodsHeader, allowedMethods)
	}
	if len(c.AllowHeaders) > 0 {
		allowedHeaders := strings.Join(c.AllowHeaders, Separator)
		if allowedHeaders == "*" {
			allowedHeaders = defaultAllowHeaders
			if requested := request.Header.Get(RequestHeadersHeader); requested != "" {
				allowedHeaders = requested
			}
		}
		header.Set(AllowHeadersHeader, allowedHeaders)
	}
	if c.AllowCredentials != nil {
		header.Set(AllowCredentialsHeader, strconv.FormatBool(*c.AllowCredentials))
	}
	if c.MaxAge != nil {
		header.Set(MaxAgeHeader, strconv.FormatInt(*c.MaxAge, 10))
	}
	if len(c.ExposeHeaders) > 0 {
		exposedHeaders := strings.Join(c.ExposeHeaders, Separator)
		if exposedHeaders == "*" {
			exposedHeaders = defaultExposeHeaders
		}
		header.Set(ExposeHeadersHeader, exposedHeaders)
	}
}

// defaultCors is permissive: any origin, no credentials
func defaultCors() *Cors {
	return &Cors{
		AllowHeaders:  []string{"*"},
		AllowMethods:  []string{"*"},
		AllowOrigins:  []string{"*"},
		ExposeHeaders: []string{"*"},
	}
}

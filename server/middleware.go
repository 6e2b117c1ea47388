package server

import (
	"fmt"
	"net/http"
)

// Middleware is a function that takes an http.Handler and returns an http.Handler
type Middleware func(next http.Handler) http.Handler

// ChainMiddlewareHandlers chains middleware, the first one is outermost
func ChainMiddlewareHandlers(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] == nil {
			continue
		}
		h = mws[i](h)
	}
	return h
}

// originValidationMiddleware rejects browser requests whose Origin is not allowed.
// Requests without Origin (non-browser clients) pass through.
func originValidationMiddleware(allowed []string) Middleware {
	allowedMap := make(map[string]bool, len(allowed))
	for _, origin := range allowed {
		allowedMap[origin] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || allowedMap["*"] || allowedMap[origin] {
				next.ServeHTTP(w, r)
				return
			}
			writeJSON(w, http.StatusForbidden, &httpError{Error: fmt.Sprintf("origin %v not allowed", origin)})
		})
	}
}

package httpx

import (
	"net/http"

	"github.com/aussiebroadwan/janus/pkg/slogx"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain wraps h with the given middlewares. The first middleware is the
// outermost, so Chain(h, a, b) serves a(b(h)).
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Recover turns a handler panic into a 500 response instead of killing the
// connection.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					if p == http.ErrAbortHandler {
						panic(p)
					}
					slogx.FromContext(r.Context()).Error("panic serving request", "panic", p)
					WriteError(w, http.StatusInternalServerError, "server_error", "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"net/http"

	httpctx "github.com/fps-platform/fps-backend/internal/api/http/context"
	"github.com/fps-platform/fps-backend/internal/api/http/response"
)

// RequireAuth rejects requests that reached a protected route without an
// authenticated user on the context. Every rejection gets the same 401 body
// regardless of what went wrong upstream.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := httpctx.UserFrom(r.Context()); !ok {
			response.Unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

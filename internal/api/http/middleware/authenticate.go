package middleware

import (
	"context"
	"net/http"
	"strings"

	httpctx "github.com/fps-platform/fps-backend/internal/api/http/context"
	"github.com/fps-platform/fps-backend/internal/logger"
	"github.com/fps-platform/fps-backend/internal/model"
)

// Identifier resolves the user behind an access token.
type Identifier interface {
	Identify(ctx context.Context, accessToken string) (model.User, error)
}

// Authenticate extracts a bearer token from the Authorization header and, when
// it resolves, puts the user on the request context. It never rejects: a
// missing, malformed, or unresolvable token just leaves the request
// unauthenticated, and downstream RequireAuth decides whether that matters.
// Requests whose path starts with one of the skip prefixes bypass token
// resolution entirely.
type Authenticate struct {
	tokens       Identifier
	logger       *logger.Logger
	skipPrefixes []string
}

// NewAuthenticate creates the Authenticate middleware.
func NewAuthenticate(tokens Identifier, logger *logger.Logger, skipPrefixes []string) *Authenticate {
	return &Authenticate{tokens: tokens, logger: logger, skipPrefixes: skipPrefixes}
}

// Handler wraps next with token resolution.
func (m *Authenticate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.shouldSkip(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		tokenString := bearerToken(r)
		if tokenString == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.tokens.Identify(r.Context(), tokenString)
		if err != nil {
			// Resolution failures are swallowed: the request proceeds
			// unauthenticated and protected routes answer with the
			// uniform 401.
			m.logger.Debug("could not resolve bearer token",
				"path", r.URL.Path,
				"error", err.Error())
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(httpctx.WithUser(r.Context(), user)))
	})
}

func (m *Authenticate) shouldSkip(path string) bool {
	for _, prefix := range m.skipPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
// Any other scheme yields an empty string.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

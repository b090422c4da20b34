// Package context carries the authenticated user through request contexts.
package context

import (
	"context"

	"github.com/fps-platform/fps-backend/internal/model"
)

type ctxKey int

const userKey ctxKey = iota

// WithUser returns a context holding the authenticated user.
func WithUser(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFrom retrieves the authenticated user from the context. The boolean is
// false when the request was never authenticated.
func UserFrom(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userKey).(model.User)
	return user, ok
}

package handler

import (
	"net/http"

	httpctx "github.com/fps-platform/fps-backend/internal/api/http/context"
	"github.com/fps-platform/fps-backend/internal/api/http/response"
)

// User serves the /api/users endpoints.
type User struct{}

// NewUser creates the user handler.
func NewUser() *User {
	return &User{}
}

// Me handles GET /api/users/me for the authenticated user.
func (h *User) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := httpctx.UserFrom(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	response.OK(w, http.StatusOK, "ok", userData{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpctx "github.com/fps-platform/fps-backend/internal/api/http/context"
	"github.com/fps-platform/fps-backend/internal/model"
)

func TestUser_Me(t *testing.T) {
	h := NewUser()

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req = req.WithContext(httpctx.WithUser(req.Context(), model.User{
		ID:       7,
		Username: "alice",
		Email:    "alice@example.com",
	}))
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	data := body.Data.(map[string]any)
	assert.Equal(t, float64(7), data["id"])
	assert.Equal(t, "alice", data["username"])
	assert.Equal(t, "alice@example.com", data["email"])
}

func TestUser_Me_Unauthenticated(t *testing.T) {
	h := NewUser()

	rec := httptest.NewRecorder()
	h.Me(rec, httptest.NewRequest(http.MethodGet, "/api/users/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

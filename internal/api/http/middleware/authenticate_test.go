package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpctx "github.com/fps-platform/fps-backend/internal/api/http/context"
	"github.com/fps-platform/fps-backend/internal/api/http/response"
	"github.com/fps-platform/fps-backend/internal/model"
	"github.com/fps-platform/fps-backend/internal/testutil"
)

type mockIdentifier struct {
	mock.Mock
}

func (m *mockIdentifier) Identify(ctx context.Context, accessToken string) (model.User, error) {
	args := m.Called(ctx, accessToken)
	return args.Get(0).(model.User), args.Error(1)
}

// captureHandler records whether it ran and what user it saw.
type captureHandler struct {
	called bool
	user   model.User
	authed bool
}

func (h *captureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.user, h.authed = httpctx.UserFrom(r.Context())
	w.WriteHeader(http.StatusOK)
}

func TestAuthenticate_ValidToken(t *testing.T) {
	user := model.User{ID: 1, Username: "alice"}

	tokens := &mockIdentifier{}
	tokens.On("Identify", mock.Anything, "good-token").Return(user, nil).Once()

	next := &captureHandler{}
	m := NewAuthenticate(tokens, testutil.MakeNoopLogger(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	m.Handler(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, next.called)
	assert.True(t, next.authed)
	assert.Equal(t, user, next.user)
}

func TestAuthenticate_BadTokenProceedsUnauthenticated(t *testing.T) {
	tokens := &mockIdentifier{}
	tokens.On("Identify", mock.Anything, "bad-token").Return(model.User{}, model.ErrInvalidToken).Once()

	next := &captureHandler{}
	m := NewAuthenticate(tokens, testutil.MakeNoopLogger(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	m.Handler(next).ServeHTTP(rec, req)

	// The middleware itself never rejects.
	assert.True(t, next.called)
	assert.False(t, next.authed)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticate_NoHeader(t *testing.T) {
	tokens := &mockIdentifier{}

	next := &captureHandler{}
	m := NewAuthenticate(tokens, testutil.MakeNoopLogger(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	m.Handler(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, next.called)
	assert.False(t, next.authed)
	tokens.AssertNotCalled(t, "Identify")
}

func TestAuthenticate_NonBearerScheme(t *testing.T) {
	tokens := &mockIdentifier{}

	next := &captureHandler{}
	m := NewAuthenticate(tokens, testutil.MakeNoopLogger(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	m.Handler(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, next.called)
	assert.False(t, next.authed)
	tokens.AssertNotCalled(t, "Identify")
}

func TestAuthenticate_SkipPrefix(t *testing.T) {
	tokens := &mockIdentifier{}

	next := &captureHandler{}
	m := NewAuthenticate(tokens, testutil.MakeNoopLogger(), []string{"/api/auth/", "/health"})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	m.Handler(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, next.called)
	tokens.AssertNotCalled(t, "Identify")
}

func TestRequireAuth(t *testing.T) {
	t.Run("authenticated request passes", func(t *testing.T) {
		next := &captureHandler{}
		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		req = req.WithContext(httpctx.WithUser(req.Context(), model.User{ID: 1}))

		rec := httptest.NewRecorder()
		RequireAuth(next).ServeHTTP(rec, req)

		assert.True(t, next.called)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unauthenticated request gets uniform 401", func(t *testing.T) {
		next := &captureHandler{}
		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)

		rec := httptest.NewRecorder()
		RequireAuth(next).ServeHTTP(rec, req)

		assert.False(t, next.called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var body response.Envelope
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.False(t, body.Success)
		assert.Equal(t, "authentication required", body.Message)
		assert.False(t, body.Timestamp.IsZero())
		assert.Nil(t, body.Data)
	})
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fps-platform/fps-backend/internal/model"
	"github.com/fps-platform/fps-backend/internal/repository/memory"
	"github.com/fps-platform/fps-backend/internal/testutil"
	"github.com/fps-platform/fps-backend/internal/token"
)

// Full lifecycle against the real codec and in-memory stores: login, rotate,
// replay the rotated-away token, invalidate everything.
func TestTokenLifecycle(t *testing.T) {
	ctx := context.Background()

	manager := token.NewJWT("lifecycle-secret", time.Hour, 24*time.Hour)
	tokens := memory.NewTokenRepository()
	users := memory.NewUserRepository()

	alice, err := users.Create(ctx, model.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "irrelevant-here",
	})
	require.NoError(t, err)

	svc := NewTokenService(manager, tokens, users, testutil.MakeNoopLogger())
	base := time.Now().Truncate(time.Second)
	svc.now = func() time.Time { return base }

	pair1, err := svc.Issue(ctx, alice)
	require.NoError(t, err)
	assert.True(t, manager.Verify(pair1.AccessToken))
	assert.True(t, manager.Verify(pair1.RefreshToken))
	assert.NotEqual(t, pair1.AccessToken, pair1.RefreshToken)

	gotID, err := manager.UserID(pair1.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, gotID)
	subject, err := manager.Subject(pair1.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)

	// The refresh token always outlives the access token it was issued with.
	accessExp, err := manager.ExpiresAt(pair1.AccessToken)
	require.NoError(t, err)
	refreshExp, err := manager.ExpiresAt(pair1.RefreshToken)
	require.NoError(t, err)
	assert.False(t, accessExp.After(refreshExp))

	// Rotate: a fresh pair comes back and the old strings are gone for good.
	svc.now = func() time.Time { return base.Add(time.Minute) }
	pair2, err := svc.Refresh(ctx, pair1.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair1.AccessToken, pair2.AccessToken)
	assert.NotEqual(t, pair1.RefreshToken, pair2.RefreshToken)

	// The rotated-away refresh token still verifies cryptographically but no
	// record holds it anymore.
	assert.True(t, manager.Verify(pair1.RefreshToken))
	_, err = svc.Refresh(ctx, pair1.RefreshToken)
	require.ErrorIs(t, err, model.ErrTokenNotFound)

	// The old access token is equally dead for store-backed lookups.
	_, err = tokens.GetByAccessToken(ctx, pair1.AccessToken)
	require.ErrorIs(t, err, model.ErrNotFound)

	// The current pair keeps working.
	pair3, err := svc.Refresh(ctx, pair2.RefreshToken)
	require.NoError(t, err)

	// A validly signed token this subsystem never persisted is unknown.
	foreign, err := manager.Mint(alice, model.TokenKindRefresh, base)
	require.NoError(t, err)
	_, err = svc.Refresh(ctx, foreign)
	require.ErrorIs(t, err, model.ErrTokenNotFound)

	// Rotation reuses the record: one live record per login session.
	active, err := tokens.ListActiveByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	// A second login adds a second record without touching the first.
	_, err = svc.Issue(ctx, alice)
	require.NoError(t, err)
	active, err = tokens.ListActiveByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	// Invalidation wipes every session; the freshest refresh token dies too.
	require.NoError(t, svc.InvalidateAllForUser(ctx, alice.ID))
	_, err = svc.Refresh(ctx, pair3.RefreshToken)
	require.ErrorIs(t, err, model.ErrTokenNotFound)

	// Invalidating again is a no-op, not an error.
	require.NoError(t, svc.InvalidateAllForUser(ctx, alice.ID))
}

func TestTokenLifecycle_IdentifyRoundTrip(t *testing.T) {
	ctx := context.Background()

	manager := token.NewJWT("identify-secret", time.Hour, 24*time.Hour)
	tokens := memory.NewTokenRepository()
	users := memory.NewUserRepository()

	alice, err := users.Create(ctx, model.User{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)

	svc := NewTokenService(manager, tokens, users, testutil.MakeNoopLogger())

	pair, err := svc.Issue(ctx, alice)
	require.NoError(t, err)

	got, err := svc.Identify(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	// A refresh token never authenticates a request.
	_, err = svc.Identify(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, model.ErrInvalidToken)

	// Neither does a token signed with a different key.
	other := token.NewJWT("other-secret", time.Hour, 24*time.Hour)
	forged, err := other.Mint(alice, model.TokenKindAccess, time.Now())
	require.NoError(t, err)
	_, err = svc.Identify(ctx, forged)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/fps-platform/fps-backend/internal/model"
	repo "github.com/fps-platform/fps-backend/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "fps_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/fps_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func TestRepositories_TokenLifecycle(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)
	tr := repo.NewTokenRepository(conn)

	user, err := ur.Create(ctx, model.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	byName, err := ur.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, user.ID, byName.ID)

	_, err = ur.GetByUsername(ctx, "nobody")
	require.ErrorIs(t, err, model.ErrNotFound)

	now := time.Now().Truncate(time.Second)
	record := model.TokenRecord{
		ID:                    uuid.New(),
		UserID:                user.ID,
		AccessToken:           "access-1",
		RefreshToken:          "refresh-1",
		AccessTokenExpiresAt:  now.Add(time.Hour),
		RefreshTokenExpiresAt: now.Add(24 * time.Hour),
		CreatedAt:             now,
	}
	require.NoError(t, tr.Save(ctx, record))

	byAccess, err := tr.GetByAccessToken(ctx, "access-1")
	require.NoError(t, err)
	require.Equal(t, record.ID, byAccess.ID)

	byRefresh, err := tr.GetByRefreshToken(ctx, "refresh-1")
	require.NoError(t, err)
	require.Equal(t, record.ID, byRefresh.ID)

	active, err := tr.ListActiveByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)

	// Rotation: same id, new token strings, same row count.
	record.AccessToken = "access-2"
	record.RefreshToken = "refresh-2"
	record.AccessTokenExpiresAt = now.Add(2 * time.Hour)
	record.RefreshTokenExpiresAt = now.Add(25 * time.Hour)
	require.NoError(t, tr.Save(ctx, record))

	_, err = tr.GetByRefreshToken(ctx, "refresh-1")
	require.ErrorIs(t, err, model.ErrNotFound)

	rotated, err := tr.GetByRefreshToken(ctx, "refresh-2")
	require.NoError(t, err)
	require.Equal(t, record.ID, rotated.ID)

	active, err = tr.ListActiveByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)

	require.NoError(t, tr.DeleteAllByUser(ctx, user.ID))
	active, err = tr.ListActiveByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, active)

	// Idempotent: deleting again is a no-op, not an error.
	require.NoError(t, tr.DeleteAllByUser(ctx, user.ID))
}

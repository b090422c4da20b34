package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/fps-platform/fps-backend/internal/model"
)

// TokenStore is a mock implementation of model.TokenStore.
type TokenStore struct {
	mock.Mock
}

func (m *TokenStore) GetByAccessToken(ctx context.Context, token string) (model.TokenRecord, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.TokenRecord), args.Error(1)
}

func (m *TokenStore) GetByRefreshToken(ctx context.Context, token string) (model.TokenRecord, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.TokenRecord), args.Error(1)
}

func (m *TokenStore) ListActiveByUser(ctx context.Context, userID int64) ([]model.TokenRecord, error) {
	args := m.Called(ctx, userID)
	if records := args.Get(0); records != nil {
		return records.([]model.TokenRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TokenStore) Save(ctx context.Context, record model.TokenRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *TokenStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TokenStore) DeleteAllByUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

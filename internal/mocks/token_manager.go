// Code generated by mockery; hand-maintained. Testify mocks for model interfaces.
package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/fps-platform/fps-backend/internal/model"
)

// TokenManager is a mock implementation of model.TokenManager.
type TokenManager struct {
	mock.Mock
}

func (m *TokenManager) Mint(user model.User, kind model.TokenKind, issuedAt time.Time) (string, error) {
	args := m.Called(user, kind, issuedAt)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) Verify(token string) bool {
	args := m.Called(token)
	return args.Bool(0)
}

func (m *TokenManager) Subject(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) UserID(token string) (int64, error) {
	args := m.Called(token)
	return args.Get(0).(int64), args.Error(1)
}

func (m *TokenManager) ExpiresAt(token string) (time.Time, error) {
	args := m.Called(token)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *TokenManager) Kind(token string) (model.TokenKind, error) {
	args := m.Called(token)
	return args.Get(0).(model.TokenKind), args.Error(1)
}

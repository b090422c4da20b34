package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fps-platform/fps-backend/internal/model"
)

var _ model.TokenStore = (*TokenRepository)(nil)

// TokenRepository is an in-memory TokenStore used in tests and as a
// lightweight backing for single-process deployments.
type TokenRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]model.TokenRecord
}

func NewTokenRepository() *TokenRepository {
	return &TokenRepository{records: make(map[uuid.UUID]model.TokenRecord)}
}

func (r *TokenRepository) GetByAccessToken(_ context.Context, token string) (model.TokenRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, record := range r.records {
		if record.AccessToken == token {
			return record, nil
		}
	}
	return model.TokenRecord{}, model.ErrNotFound
}

func (r *TokenRepository) GetByRefreshToken(_ context.Context, token string) (model.TokenRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, record := range r.records {
		if record.RefreshToken == token {
			return record, nil
		}
	}
	return model.TokenRecord{}, model.ErrNotFound
}

func (r *TokenRepository) ListActiveByUser(_ context.Context, userID int64) ([]model.TokenRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := time.Now()
	var records []model.TokenRecord
	for _, record := range r.records {
		if record.UserID == userID && record.RefreshTokenExpiresAt.After(now) {
			records = append(records, record)
		}
	}
	return records, nil
}

func (r *TokenRepository) Save(_ context.Context, record model.TokenRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	r.records[record.ID] = record
	return nil
}

func (r *TokenRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, id)
	return nil
}

func (r *TokenRepository) DeleteAllByUser(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, record := range r.records {
		if record.UserID == userID {
			delete(r.records, id)
		}
	}
	return nil
}

package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenStore owns TokenRecord persistence. The token service is the only
// writer; the request filter path never writes.
type TokenStore interface {
	GetByAccessToken(ctx context.Context, token string) (TokenRecord, error)
	GetByRefreshToken(ctx context.Context, token string) (TokenRecord, error)
	ListActiveByUser(ctx context.Context, userID int64) ([]TokenRecord, error)
	Save(ctx context.Context, record TokenRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByUser(ctx context.Context, userID int64) error
}

// TokenRecord is the persisted unit of trust state: one record per active
// issuance event. Rotation overwrites the record in place (same ID, new
// token strings and expiries); logout deletes every record of the user.
type TokenRecord struct {
	ID                    uuid.UUID
	UserID                int64
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	CreatedAt             time.Time
}

// RefreshExpired reports whether the persisted refresh expiry has passed.
// This is independent of the cryptographic expiry check: a token can verify
// fine yet no longer be the live credential.
func (r TokenRecord) RefreshExpired(now time.Time) bool {
	return now.After(r.RefreshTokenExpiresAt) || now.Equal(r.RefreshTokenExpiresAt)
}

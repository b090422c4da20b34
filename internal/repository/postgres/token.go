package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fps-platform/fps-backend/internal/model"
)

var _ model.TokenStore = (*TokenRepository)(nil)

type TokenRepository struct {
	db *Connection
}

func NewTokenRepository(db *Connection) *TokenRepository {
	return &TokenRepository{db: db}
}

const tokenColumns = `id, user_id, access_token, refresh_token, access_token_expires_at, refresh_token_expires_at, created_at`

func (r *TokenRepository) GetByAccessToken(ctx context.Context, token string) (model.TokenRecord, error) {
	query := `SELECT ` + tokenColumns + ` FROM tokens WHERE access_token = $1`

	record, err := r.scanRecord(r.db.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.TokenRecord{}, model.ErrNotFound
		}
		return model.TokenRecord{}, fmt.Errorf("failed to get token record by access token: %w", err)
	}
	return record, nil
}

func (r *TokenRepository) GetByRefreshToken(ctx context.Context, token string) (model.TokenRecord, error) {
	query := `SELECT ` + tokenColumns + ` FROM tokens WHERE refresh_token = $1`

	record, err := r.scanRecord(r.db.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.TokenRecord{}, model.ErrNotFound
		}
		return model.TokenRecord{}, fmt.Errorf("failed to get token record by refresh token: %w", err)
	}
	return record, nil
}

// ListActiveByUser returns records whose refresh expiry is still in the
// future. Order is not guaranteed.
func (r *TokenRepository) ListActiveByUser(ctx context.Context, userID int64) ([]model.TokenRecord, error) {
	query := `SELECT ` + tokenColumns + ` FROM tokens
			  WHERE user_id = $1 AND refresh_token_expires_at > NOW()`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active token records: %w", err)
	}
	defer rows.Close()

	var records []model.TokenRecord
	for rows.Next() {
		record, err := r.scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan token record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read token records: %w", err)
	}
	return records, nil
}

// Save upserts the record by id: a new issuance inserts, a rotation
// overwrites the existing row in place.
func (r *TokenRepository) Save(ctx context.Context, record model.TokenRecord) error {
	const query = `
        INSERT INTO tokens (
            id, user_id, access_token, refresh_token, access_token_expires_at, refresh_token_expires_at, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (id) DO UPDATE SET
            access_token = EXCLUDED.access_token,
            refresh_token = EXCLUDED.refresh_token,
            access_token_expires_at = EXCLUDED.access_token_expires_at,
            refresh_token_expires_at = EXCLUDED.refresh_token_expires_at
    `

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	_, err := r.db.Exec(ctx, query,
		record.ID, record.UserID, record.AccessToken, record.RefreshToken,
		record.AccessTokenExpiresAt, record.RefreshTokenExpiresAt, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save token record: %w", err)
	}
	return nil
}

func (r *TokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM tokens WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete token record: %w", err)
	}
	return nil
}

func (r *TokenRepository) DeleteAllByUser(ctx context.Context, userID int64) error {
	const query = `DELETE FROM tokens WHERE user_id = $1`

	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to delete token records by user: %w", err)
	}
	return nil
}

func (r *TokenRepository) scanRecord(row pgx.Row) (model.TokenRecord, error) {
	var record model.TokenRecord
	err := row.Scan(
		&record.ID, &record.UserID, &record.AccessToken, &record.RefreshToken,
		&record.AccessTokenExpiresAt, &record.RefreshTokenExpiresAt, &record.CreatedAt,
	)
	return record, err
}

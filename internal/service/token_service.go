package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fps-platform/fps-backend/internal/logger"
	"github.com/fps-platform/fps-backend/internal/model"
)

// TokenService provides high-level operations for issuing, rotating, and
// invalidating token pairs. It composes the TokenManager, the TokenStore,
// and the user lookup collaborator.
//
// Validity is checked at two independent layers: the codec's cryptographic
// and expiry check, and the store's persisted state. A token can verify fine
// yet already be superseded by a later rotation, so the store lookup is
// authoritative for "is this still the live credential".
type TokenService struct {
	manager model.TokenManager
	store   model.TokenStore
	users   model.UserStore
	logger  *logger.Logger
	now     func() time.Time
}

func NewTokenService(manager model.TokenManager, store model.TokenStore, users model.UserStore, logger *logger.Logger) *TokenService {
	return &TokenService{
		manager: manager,
		store:   store,
		users:   users,
		logger:  logger,
		now:     time.Now,
	}
}

// Issue mints an access/refresh pair for the user, persists a new token
// record, and returns the pair. Every login creates its own record; rotation
// alone overwrites records in place.
func (s *TokenService) Issue(ctx context.Context, user model.User) (model.TokenPair, error) {
	now := s.now()

	access, err := s.manager.Mint(user, model.TokenKindAccess, now)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to mint access token: %w", err)
	}
	refresh, err := s.manager.Mint(user, model.TokenKindRefresh, now)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to mint refresh token: %w", err)
	}

	record, err := s.buildRecord(uuid.New(), user.ID, access, refresh, now)
	if err != nil {
		return model.TokenPair{}, err
	}

	if err := s.store.Save(ctx, record); err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to persist token record: %w", err)
	}

	return model.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		UserID:       user.ID,
		Username:     user.Username,
		Email:        user.Email,
	}, nil
}

// Refresh rotates the pair bound to the presented refresh token. The old
// access and refresh strings become permanently unusable; there is no grace
// window. Errors follow the rotation taxonomy: ErrInvalidToken for codec
// failures, ErrTokenNotFound when no record holds the string (already
// rotated away or never issued here), ErrRefreshExpired when the persisted
// expiry has passed — on that path the stale record is deleted first.
//
// Two callers racing with the same refresh token are not serialized: both
// may pass the checks before either writes, and the second Save wins. The
// rotation is deliberately not a compare-and-swap on the stored string.
func (s *TokenService) Refresh(ctx context.Context, presented string) (model.TokenPair, error) {
	if !s.manager.Verify(presented) {
		return model.TokenPair{}, model.ErrInvalidToken
	}
	if kind, err := s.manager.Kind(presented); err != nil || kind != model.TokenKindRefresh {
		return model.TokenPair{}, model.ErrInvalidToken
	}

	record, err := s.store.GetByRefreshToken(ctx, presented)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.TokenPair{}, model.ErrTokenNotFound
		}
		return model.TokenPair{}, fmt.Errorf("failed to look up refresh token: %w", err)
	}

	now := s.now()
	if record.RefreshExpired(now) {
		// Lazy cleanup: drop the stale record before surfacing the error.
		if err := s.store.Delete(ctx, record.ID); err != nil {
			s.logger.Error("failed to delete expired token record",
				"record_id", record.ID,
				"error", err.Error())
		}
		return model.TokenPair{}, model.ErrRefreshExpired
	}

	user, err := s.users.GetByID(ctx, record.UserID)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to get token owner: %w", err)
	}

	access, err := s.manager.Mint(user, model.TokenKindAccess, now)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to mint access token: %w", err)
	}
	refresh, err := s.manager.Mint(user, model.TokenKindRefresh, now)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to mint refresh token: %w", err)
	}

	// Overwrite in place: same record id, new strings and expiries.
	rotated, err := s.buildRecord(record.ID, record.UserID, access, refresh, record.CreatedAt)
	if err != nil {
		return model.TokenPair{}, err
	}
	if err := s.store.Save(ctx, rotated); err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to persist rotated token record: %w", err)
	}

	return model.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		UserID:       user.ID,
		Username:     user.Username,
		Email:        user.Email,
	}, nil
}

// InvalidateAllForUser deletes every token record owned by the user,
// regardless of expiry. Invalidating a user with no records is a no-op.
func (s *TokenService) InvalidateAllForUser(ctx context.Context, userID int64) error {
	if err := s.store.DeleteAllByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to invalidate user tokens: %w", err)
	}
	return nil
}

// Identify resolves the user behind a verified access token. It is the
// read-only path used by the request filter; it never writes to the store.
func (s *TokenService) Identify(ctx context.Context, accessToken string) (model.User, error) {
	if !s.manager.Verify(accessToken) {
		return model.User{}, model.ErrInvalidToken
	}
	if kind, err := s.manager.Kind(accessToken); err != nil || kind != model.TokenKindAccess {
		return model.User{}, model.ErrInvalidToken
	}

	subject, err := s.manager.Subject(accessToken)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to extract token subject: %w", err)
	}

	user, err := s.users.GetByUsername(ctx, subject)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to resolve token subject: %w", err)
	}
	return user, nil
}

// buildRecord reads both expiries back from the minted tokens, the way the
// record keeps persisted expiry in lockstep with the signed claims.
func (s *TokenService) buildRecord(id uuid.UUID, userID int64, access, refresh string, createdAt time.Time) (model.TokenRecord, error) {
	accessExp, err := s.manager.ExpiresAt(access)
	if err != nil {
		return model.TokenRecord{}, fmt.Errorf("failed to read access token expiry: %w", err)
	}
	refreshExp, err := s.manager.ExpiresAt(refresh)
	if err != nil {
		return model.TokenRecord{}, fmt.Errorf("failed to read refresh token expiry: %w", err)
	}

	return model.TokenRecord{
		ID:                    id,
		UserID:                userID,
		AccessToken:           access,
		RefreshToken:          refresh,
		AccessTokenExpiresAt:  accessExp,
		RefreshTokenExpiresAt: refreshExp,
		CreatedAt:             createdAt,
	}, nil
}

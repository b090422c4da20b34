package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/fps-platform/fps-backend/internal/model"
)

// Claims represents JWT claims carried by both token kinds.
type Claims struct {
	jwt.RegisteredClaims
	UserID    int64  `json:"userId"`
	TokenType string `json:"typ"`
}

// JWT implements model.TokenManager backed by symmetric HMAC. The same key
// signs and verifies both kinds; kinds are told apart by the signed "typ"
// claim, not by key material.
type JWT struct {
	secretKey  string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

var _ model.TokenManager = (*JWT)(nil)

// NewJWT creates a new JWT token manager with the provided secret key and
// per-kind TTLs.
func NewJWT(secretKey string, accessTTL, refreshTTL time.Duration) *JWT {
	return &JWT{
		secretKey:  secretKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (j *JWT) ttl(kind model.TokenKind) time.Duration {
	if kind == model.TokenKindRefresh {
		return j.refreshTTL
	}
	return j.accessTTL
}

// Mint produces a signed credential for the user with subject, numeric user
// id, issued-at and an expiry of issuedAt plus the kind's TTL.
func (j *JWT) Mint(user model.User, kind model.TokenKind, issuedAt time.Time) (string, error) {
	// A fresh JTI keeps every minted string unique, even for the same user
	// within the same second. Stored records rely on that uniqueness.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(j.ttl(kind))),
		},
		UserID:    user.ID,
		TokenType: string(kind),
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", kind, err)
	}

	return tokenString, nil
}

func (j *JWT) parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	}, jwt.WithTimeFunc(j.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}
	return claims, nil
}

// Verify reports whether the signature matches and the embedded expiry is
// strictly in the future. Malformed, unsigned or expired input is simply
// invalid; the distinction matters for logs only, never for behavior.
func (j *JWT) Verify(tokenString string) bool {
	_, err := j.parse(tokenString)
	return err == nil
}

// Subject extracts the subject (username) from a verified token.
func (j *JWT) Subject(tokenString string) (string, error) {
	claims, err := j.parse(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// UserID extracts the numeric user id from a verified token.
func (j *JWT) UserID(tokenString string) (int64, error) {
	claims, err := j.parse(tokenString)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

// ExpiresAt extracts the expiry timestamp from a verified token.
func (j *JWT) ExpiresAt(tokenString string) (time.Time, error) {
	claims, err := j.parse(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("token has no expiry")
	}
	return claims.ExpiresAt.Time, nil
}

// Kind extracts the token kind from a verified token.
func (j *JWT) Kind(tokenString string) (model.TokenKind, error) {
	claims, err := j.parse(tokenString)
	if err != nil {
		return "", err
	}
	switch kind := model.TokenKind(claims.TokenType); kind {
	case model.TokenKindAccess, model.TokenKindRefresh:
		return kind, nil
	default:
		return "", fmt.Errorf("unknown token kind %q", claims.TokenType)
	}
}

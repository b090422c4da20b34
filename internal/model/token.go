package model

import "time"

// TokenKind selects which TTL a minted credential carries. The kind is also
// embedded as a signed claim and checked at verification, so an access token
// cannot be replayed where a refresh token is expected.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// TokenManager mints and verifies signed bearer credentials and extracts
// their claims. Extraction methods are only meaningful for tokens that
// already passed Verify.
type TokenManager interface {
	Mint(user User, kind TokenKind, issuedAt time.Time) (string, error)
	Verify(token string) bool
	Subject(token string) (string, error)
	UserID(token string) (int64, error)
	ExpiresAt(token string) (time.Time, error)
	Kind(token string) (TokenKind, error)
}

// TokenPair is the transient result of an issuance: both credentials plus
// the owning identity. It is returned to the caller, never persisted as-is.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	UserID       int64
	Username     string
	Email        string
}

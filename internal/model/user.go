package model

import (
	"context"
	"time"
)

// UserStore defines persistence operations for user identities.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, user User) (User, error)
}

// User represents a stored user identity. The token subsystem treats it as
// immutable: it references users but never owns their lifecycle.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

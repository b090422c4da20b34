package model

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidToken       = errors.New("token is invalid")
	ErrTokenNotFound      = errors.New("refresh token not found")
	ErrRefreshExpired     = errors.New("refresh token expired")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already taken")
)

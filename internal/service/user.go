package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/fps-platform/fps-backend/internal/logger"
	"github.com/fps-platform/fps-backend/internal/model"
)

// UserService handles registration and credential checks. It sits outside
// the token lifecycle core: the token subsystem only consumes its lookups.
type UserService struct {
	users  model.UserStore
	logger *logger.Logger
}

func NewUserService(users model.UserStore, logger *logger.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// Register creates a user with a bcrypt password hash. Username and email
// must both be unused.
func (s *UserService) Register(ctx context.Context, username, email, password string) (model.User, error) {
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return model.User{}, model.ErrUsernameTaken
	} else if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return model.User{}, model.ErrEmailTaken
	} else if !errors.Is(err, model.ErrNotFound) {
		return model.User{}, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(ctx, model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", "username", username)
	return user, nil
}

// Login returns the user when the password matches. Unknown usernames and
// wrong passwords both map to ErrInvalidCredentials so callers cannot tell
// the cases apart.
func (s *UserService) Login(ctx context.Context, username, password string) (model.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrInvalidCredentials
		}
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.User{}, model.ErrInvalidCredentials
	}

	return user, nil
}

// GetByID exposes the identity lookup for authenticated request handling.
func (s *UserService) GetByID(ctx context.Context, id int64) (model.User, error) {
	return s.users.GetByID(ctx, id)
}

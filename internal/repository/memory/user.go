package memory

import (
	"context"
	"sync"
	"time"

	"github.com/fps-platform/fps-backend/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

// UserRepository is an in-memory UserStore used in tests.
type UserRepository struct {
	mu    sync.RWMutex
	seq   int64
	users map[int64]model.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[int64]model.User)}
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return user, nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (r *UserRepository) Create(_ context.Context, user model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	user.ID = r.seq
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = user.CreatedAt
	}
	r.users[user.ID] = user
	return user, nil
}

package repository

import (
	"context"
	"sync"

	"stackit/internal/common"
	"stackit/internal/domain/model"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	// Insert exists for durable stores. The demo registration flow never
	// calls it, so registered accounts vanish at response time.
	Insert(ctx context.Context, user *model.User) error
}

type memoryUserRepository struct {
	mu    sync.RWMutex
	users []model.User
}

func NewMemoryUserRepository(users []model.User) UserRepository {
	return &memoryUserRepository{users: users}
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if r.users[i].Email == email {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memoryUserRepository) FindByID(_ context.Context, id int64) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memoryUserRepository) Insert(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].Email == user.Email {
			return common.ErrConflict
		}
	}
	r.users = append(r.users, *user)
	return nil
}

package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"bookcatalog-backend/internal/domains/user"
)

// memoryRepository - index theo id và theo email, check-and-insert trong cùng một lock
type memoryRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]user.User
	byEmail map[string]uuid.UUID
}

func NewMemoryRepository() user.Repository {
	return &memoryRepository{
		byID:    make(map[uuid.UUID]user.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *memoryRepository) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[u.Email]; taken {
		return user.ErrEmailAlreadyExists
	}

	r.byID[u.ID] = *u
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return &u, nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	u := r.byID[id]
	return &u, nil
}

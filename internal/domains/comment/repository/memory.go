package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"bookcatalog-backend/internal/domains/comment/model"
)

type memoryRepository struct {
	mu     sync.RWMutex
	byBook map[uuid.UUID][]model.Comment
}

func NewMemoryRepository() RepositoryInterface {
	return &memoryRepository{byBook: make(map[uuid.UUID][]model.Comment)}
}

func (r *memoryRepository) Create(_ context.Context, c *model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byBook[c.BookID] = append(r.byBook[c.BookID], *c)
	return nil
}

func (r *memoryRepository) FindByBookID(_ context.Context, bookID uuid.UUID) ([]model.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.byBook[bookID]
	out := make([]model.Comment, len(stored))
	copy(out, stored)
	return out, nil
}

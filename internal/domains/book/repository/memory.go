package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"bookcatalog-backend/internal/domains/book/model"
)

// memoryRepository - dùng cho DB_DRIVER=memory và test, giữ thứ tự insert
type memoryRepository struct {
	mu    sync.RWMutex
	books map[uuid.UUID]model.Book
	order []uuid.UUID
	now   func() time.Time
}

func NewMemoryRepository() RepositoryInterface {
	return &memoryRepository{
		books: make(map[uuid.UUID]model.Book),
		now:   time.Now,
	}
}

func (r *memoryRepository) Create(_ context.Context, book *model.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.books[book.ID]; !exists {
		r.order = append(r.order, book.ID)
	}
	r.books[book.ID] = *book
	return nil
}

func (r *memoryRepository) FindAll(_ context.Context) ([]model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	books := make([]model.Book, 0, len(r.order))
	for _, id := range r.order {
		books = append(books, r.books[id])
	}
	return books, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id uuid.UUID) (*model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	return &b, nil
}

func (r *memoryRepository) Update(_ context.Context, id uuid.UUID, patch model.UpdateBookRequest) (*model.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[id]
	if !ok {
		return nil, model.ErrBookNotFound
	}

	b.Apply(patch, r.now().UTC())
	r.books[id] = b
	return &b, nil
}

func (r *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return model.ErrBookNotFound
	}
	delete(r.books, id)

	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

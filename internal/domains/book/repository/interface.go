package repository

import (
	"context"

	"github.com/google/uuid"

	"bookcatalog-backend/internal/domains/book/model"
)

// RepositoryInterface - Định nghĩa data access methods
// FindByID/Update/Delete trả model.ErrBookNotFound khi không có bản ghi
type RepositoryInterface interface {
	Create(ctx context.Context, book *model.Book) error
	FindAll(ctx context.Context) ([]model.Book, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	Update(ctx context.Context, id uuid.UUID, patch model.UpdateBookRequest) (*model.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

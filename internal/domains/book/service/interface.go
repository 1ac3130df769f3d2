package service

import (
	"context"

	"bookcatalog-backend/internal/domains/book/model"
)

// ServiceInterface - business logic của book, id nhận dạng string từ route
type ServiceInterface interface {
	Create(ctx context.Context, req model.CreateBookRequest) (*model.Book, error)
	FindAll(ctx context.Context) ([]model.Book, error)
	FindOne(ctx context.Context, id string) (*model.Book, error)
	Update(ctx context.Context, id string, req model.UpdateBookRequest) (*model.Book, error)
	Remove(ctx context.Context, id string) (*model.DeleteBookResponse, error)
}

package repository

import (
	"context"

	"github.com/google/uuid"

	"bookcatalog-backend/internal/domains/comment/model"
)

type RepositoryInterface interface {
	Create(ctx context.Context, comment *model.Comment) error
	// FindByBookID trả theo thứ tự lưu, không có comment → slice rỗng
	FindByBookID(ctx context.Context, bookID uuid.UUID) ([]model.Comment, error)
}

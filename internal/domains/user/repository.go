package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository định nghĩa contract cho data access layer
// Email được lưu đã normalize (NormalizeEmail)
type Repository interface {
	// Create tạo user mới
	// Returns: ErrEmailAlreadyExists nếu email đã tồn tại
	Create(ctx context.Context, user *User) error

	// FindByID tìm user theo ID
	// Returns: ErrUserNotFound nếu không tìm thấy
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail tìm user theo email (dùng cho signin)
	// Returns: ErrUserNotFound nếu không tìm thấy
	FindByEmail(ctx context.Context, email string) (*User, error)
}

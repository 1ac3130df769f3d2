package user

import "bookcatalog-backend/internal/shared/apperr"

// Repository-level errors
var (
	ErrUserNotFound       = apperr.NotFound("User not found")
	ErrEmailAlreadyExists = apperr.Conflict("User with this email already exists")
)

// Service-level errors
// Unknown email và sai password dùng chung một lỗi
var ErrInvalidCredentials = apperr.Unauthenticated("Invalid credentials")

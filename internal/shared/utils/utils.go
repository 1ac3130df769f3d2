package utils

import (
	"strings"

	"github.com/google/uuid"

	"bookcatalog-backend/internal/shared/apperr"
)

// RequireID áp dụng precondition "id không rỗng" cho mọi lookup theo id.
// id rỗng → ValidationError; id không phải UUID thì không thể tồn tại → notFound.
func RequireID(id string, notFound error) (uuid.UUID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return uuid.Nil, apperr.Field("id", "id must not be empty")
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, notFound
	}
	return parsed, nil
}

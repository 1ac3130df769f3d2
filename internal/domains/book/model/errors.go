package model

import "bookcatalog-backend/internal/shared/apperr"

var (
	ErrBookNotFound = apperr.NotFound("Book not found")
	ErrEmptyQuery   = apperr.BadRequest("query parameter must not be empty")
)

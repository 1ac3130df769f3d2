package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// CreateBookRequest - POST /books
type CreateBookRequest struct {
	Title  string  `json:"title"`
	Author *string `json:"author,omitempty"`
	Pages  *int    `json:"pages,omitempty"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.RuneLength(1, MaxTitleStoreSize).Error("title must not exceed 255 characters"),
			TitleRule,
		),
		validation.Field(&r.Author, validation.RuneLength(0, 255)),
		validation.Field(&r.Pages, validation.Min(0)),
	)
}

// UpdateBookRequest - PATCH /books/:id, field nil = giữ nguyên
type UpdateBookRequest struct {
	Title  *string `json:"title,omitempty"`
	Author *string `json:"author,omitempty"`
	Pages  *int    `json:"pages,omitempty"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("title must not be empty"),
			validation.RuneLength(1, MaxTitleStoreSize).Error("title must not exceed 255 characters"),
			TitleRule,
		),
		validation.Field(&r.Author, validation.RuneLength(0, 255)),
		validation.Field(&r.Pages, validation.Min(0)),
	)
}

// DeleteBookResponse - confirmation của DELETE /books/:id
type DeleteBookResponse struct {
	Message string    `json:"message"`
	ID      uuid.UUID `json:"id"`
}

const DeleteSuccessMessage = "Book successfully deleted"

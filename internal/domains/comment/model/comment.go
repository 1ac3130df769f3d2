package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Comment - immutable sau khi tạo, BookID chỉ là reference
type Comment struct {
	ID        uuid.UUID `json:"id" db:"id"`
	BookID    uuid.UUID `json:"bookId" db:"book_id"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

const MaxCommentLength = 2000

var notBlank = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s != "" && strings.TrimSpace(s) == "" {
		return validation.NewError("validation_not_blank", "comment must not be blank")
	}
	return nil
})

// bookIDRule - cùng parser với uuid.MustParse phía service, chấp nhận cả hex hoa
var bookIDRule = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := uuid.Parse(s); err != nil {
		return validation.NewError("validation_is_uuid", "bookId must be a UUID")
	}
	return nil
})

// CreateCommentRequest - payload của event addComment
type CreateCommentRequest struct {
	BookID  string `json:"bookId"`
	Comment string `json:"comment"`
}

func (r CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID,
			validation.Required.Error("bookId is required"),
			bookIDRule,
		),
		validation.Field(&r.Comment,
			validation.Required.Error("comment is required"),
			notBlank,
			validation.RuneLength(1, MaxCommentLength),
		),
	)
}

// BookRef - payload của subscribeToBook / unsubscribeFromBook / getAllComments
type BookRef struct {
	BookID string `json:"bookId"`
}

func (r BookRef) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID,
			validation.Required.Error("bookId is required"),
			bookIDRule,
		),
	)
}

// ParsedBookID - gọi sau Validate
func (r BookRef) ParsedBookID() uuid.UUID {
	return uuid.MustParse(r.BookID)
}

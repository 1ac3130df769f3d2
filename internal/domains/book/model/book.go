package model

import (
	"time"

	"github.com/google/uuid"
)

// Book represents the main book entity
type Book struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Author    *string   `json:"author,omitempty" db:"author"`
	Pages     *int      `json:"pages,omitempty" db:"pages"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Apply merge các field có mặt trong patch vào book
func (b *Book) Apply(patch UpdateBookRequest, now time.Time) {
	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.Author != nil {
		b.Author = patch.Author
	}
	if patch.Pages != nil {
		b.Pages = patch.Pages
	}
	b.UpdatedAt = now
}

// GenerateBookCacheKey - key cache-aside cho FindByID
func GenerateBookCacheKey(id uuid.UUID) string {
	return "book:" + id.String()
}

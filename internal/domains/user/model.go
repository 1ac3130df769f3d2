package user

import (
	"time"

	"github.com/google/uuid"
)

// User - bản ghi trong store, PasswordHash không bao giờ ra JSON
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	FirstName    string    `json:"firstName" db:"first_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// PublicUser - representation an toàn để trả về client
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
}

// ToPublic converts User entity to PublicUser
func (u *User) ToPublic() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
	}
}

package hasher

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost - bcrypt cost 10
const DefaultCost = bcrypt.DefaultCost

// Hasher salt + hash password và verify plaintext với hash đã lưu
type Hasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

// BcryptHasher - bcrypt tự sinh salt ngẫu nhiên cho mỗi lần Hash
type BcryptHasher struct {
	cost int
}

func NewBcrypt(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare - constant-time, nil khi khớp
func (h *BcryptHasher) Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"bookcatalog-backend/internal/shared/apperr"
)

// DefaultTTL - access token sống 24h
const DefaultTTL = 24 * time.Hour

var ErrInvalidToken = apperr.Unauthenticated("Unauthorized")

// Payload là dữ liệu được ký vào token, lấy từ user lúc signin
type Payload struct {
	Sub       string `json:"sub"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
}

// Claims represents JWT claims structure
type Claims struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	jwt.RegisteredClaims
}

// Manager handles JWT operations
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates new JWT manager; ttl <= 0 dùng DefaultTTL
func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock thay đồng hồ (tests)
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// TTL trả về thời hạn token
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue ký payload thành access token HS256
func (m *Manager) Issue(p Payload) (string, error) {
	now := m.now()
	claims := Claims{
		Email:     p.Email,
		FirstName: p.FirstName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Sub,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates and parses token
func (m *Manager) Verify(tokenString string) (*Payload, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, errors.New("missing subject"))
	}

	return &Payload{
		Sub:       claims.Subject,
		Email:     claims.Email,
		FirstName: claims.FirstName,
	}, nil
}

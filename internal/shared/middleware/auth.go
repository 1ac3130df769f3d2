package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"bookcatalog-backend/internal/shared/response"
	"bookcatalog-backend/pkg/jwt"
)

// AuthPayloadKey - key lưu payload đã verify trong gin context
const AuthPayloadKey = "auth"

// TokenVerifier - phần của jwt.Manager mà guard cần
type TokenVerifier interface {
	Verify(token string) (*jwt.Payload, error)
}

// AuthMiddleware - Middleware xác thực JWT token
// Mọi lỗi (thiếu header, sai format, token hỏng/hết hạn) đều là 401 envelope
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Fail(c, jwt.ErrInvalidToken)
			return
		}

		payload, err := verifier.Verify(token)
		if err != nil {
			response.Fail(c, err)
			return
		}

		c.Set(AuthPayloadKey, payload)
		c.Next()
	}
}

// GetAuthPayload lấy payload do AuthMiddleware gắn vào context
func GetAuthPayload(c *gin.Context) (*jwt.Payload, bool) {
	v, exists := c.Get(AuthPayloadKey)
	if !exists {
		return nil, false
	}
	payload, ok := v.(*jwt.Payload)
	return payload, ok
}

// bearerToken tách token từ "Bearer <token>", scheme không phân biệt hoa thường
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}

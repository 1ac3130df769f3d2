package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog-backend/internal/shared/response"
	"bookcatalog-backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newProtectedRouter(manager *jwt.Manager) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Logger(), Recovery())
	r.GET("/protected", AuthMiddleware(manager), func(c *gin.Context) {
		payload, ok := GetAuthPayload(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, payload)
	})
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func TestAuthMiddleware(t *testing.T) {
	manager := jwt.NewManager("secret", time.Hour)
	r := newProtectedRouter(manager)

	valid, err := manager.Issue(jwt.Payload{Sub: "user-1", Email: "ada@example.com", FirstName: "Ada"})
	require.NoError(t, err)

	expired, err := jwt.NewManager("secret", time.Hour).
		WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }).
		Issue(jwt.Payload{Sub: "user-1"})
	require.NoError(t, err)

	foreign, err := jwt.NewManager("other-secret", time.Hour).Issue(jwt.Payload{Sub: "user-1"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer " + valid, http.StatusOK},
		{"lowercase scheme", "bearer " + valid, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"no token", "Bearer ", http.StatusUnauthorized},
		{"garbage", "Bearer not.a.token", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"foreign signature", "Bearer " + foreign, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				var payload jwt.Payload
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
				assert.Equal(t, "user-1", payload.Sub)
				assert.Equal(t, "Ada", payload.FirstName)
				return
			}

			var env response.Envelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
			assert.Equal(t, "fail", env.Status)
			assert.Equal(t, http.StatusUnauthorized, env.Code)
			assert.Equal(t, "/protected", env.Data.Path)
		})
	}
}

func TestRequestID(t *testing.T) {
	r := newProtectedRouter(jwt.NewManager("secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRecovery(t *testing.T) {
	r := newProtectedRouter(jwt.NewManager("secret", time.Hour))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "Internal server error", env.Data.Error.Message)
	assert.Equal(t, http.StatusInternalServerError, env.Code)
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcatalog-backend/internal/config"
	"bookcatalog-backend/internal/domains/book/model"
	"bookcatalog-backend/internal/shared/response"
	"bookcatalog-backend/pkg/container"
)

func newTestApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, err := container.Build(context.Background(), &config.Config{
		App:      config.AppConfig{Environment: "test", Version: "test"},
		Database: config.DatabaseConfig{Driver: config.DriverMemory},
		JWT:      config.JWTConfig{Secret: "router-test-secret", AccessToken: time.Hour},
		Auth:     config.AuthConfig{BcryptCost: 4},
		Comments: config.CommentsConfig{WriteWait: time.Second, PongWait: 5 * time.Second},
	})
	require.NoError(t, err)
	t.Cleanup(c.Cleanup)

	return SetupRouter(c)
}

func call(t *testing.T, app http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func signupAndSignin(t *testing.T, app http.Handler) string {
	t.Helper()
	w := call(t, app, http.MethodPost, "/users/signup", "", gin.H{"email": "reader@example.com", "firstName": "Reader", "password": "pw"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = call(t, app, http.MethodPost, "/users/signin", "", gin.H{"email": "reader@example.com", "password": "pw"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(t, res.AccessToken)
	return res.AccessToken
}

func TestRouter_CleanCodeScenario(t *testing.T) {
	app := newTestApp(t)
	token := signupAndSignin(t, app)

	w := call(t, app, http.MethodPost, "/books", token, gin.H{"title": "Clean Code", "author": "R. Martin", "pages": 200})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created model.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEqual(t, uuid.Nil, created.ID)
	id := created.ID.String()

	w = call(t, app, http.MethodPatch, "/books/"+id, token, gin.H{"title": "Updated Title"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated model.Book
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Updated Title", updated.Title)
	assert.Equal(t, "R. Martin", *updated.Author)
	assert.Equal(t, 200, *updated.Pages)

	w = call(t, app, http.MethodDelete, "/books/"+id, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Book successfully deleted","id":"`+id+`"}`, w.Body.String())

	w = call(t, app, http.MethodGet, "/books/get/"+id, token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "fail", env.Status)
	assert.Equal(t, http.StatusNotFound, env.Code)
	assert.Equal(t, "/books/get/"+id, env.Data.Path)
}

func TestRouter_BooksRequireToken(t *testing.T) {
	app := newTestApp(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/books"},
		{http.MethodPost, "/books"},
		{http.MethodGet, "/books/get/" + uuid.NewString()},
		{http.MethodPatch, "/books/" + uuid.NewString()},
		{http.MethodDelete, "/books/" + uuid.NewString()},
		{http.MethodGet, "/users/me"},
	} {
		w := call(t, app, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.path)
	}

	w := call(t, app, http.MethodGet, "/books", "forged.token.value", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_HealthAndNoRoute(t *testing.T) {
	app := newTestApp(t)

	w := call(t, app, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"store":"memory"`)

	w = call(t, app, http.MethodGet, "/nope", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "Route not found", env.Data.Error.Message)
}

func TestRouter_CommentsChannel(t *testing.T) {
	app := newTestApp(t)
	srv := httptest.NewServer(app)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/comments"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	bookID := uuid.NewString()
	require.NoError(t, conn.WriteJSON(gin.H{"event": "subscribeToBook", "data": gin.H{"bookId": bookID}}))
	require.NoError(t, conn.WriteJSON(gin.H{"event": "addComment", "data": gin.H{"bookId": bookID, "comment": "Worth it"}}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var events []string
	for i := 0; i < 3; i++ {
		var f struct {
			Event string `json:"event"`
		}
		require.NoError(t, conn.ReadJSON(&f))
		events = append(events, f.Event)
	}

	assert.Equal(t, []string{"subscribeToBook", "newComment", "addComment"}, events)
}

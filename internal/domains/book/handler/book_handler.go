package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bookcatalog-backend/internal/domains/book/model"
	service "bookcatalog-backend/internal/domains/book/service"
	"bookcatalog-backend/internal/shared/apperr"
	"bookcatalog-backend/internal/shared/response"
)

// Handler - HTTP Handler (single file)
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// CreateBook - POST /books
func (h *Handler) CreateBook(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.Field("body", err.Error()))
		return
	}

	book, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, book)
}

// ListBooks - GET /books
func (h *Handler) ListBooks(c *gin.Context) {
	books, err := h.service.FindAll(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, books)
}

// GetBook - GET /books/get/:id
func (h *Handler) GetBook(c *gin.Context) {
	book, err := h.service.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, book)
}

// UpdateBook - PATCH /books/:id
func (h *Handler) UpdateBook(c *gin.Context) {
	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.Field("body", err.Error()))
		return
	}

	book, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, book)
}

// DeleteBook - DELETE /books/:id
func (h *Handler) DeleteBook(c *gin.Context) {
	result, err := h.service.Remove(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// Pipe - GET /books/pipe?name=
// Echo lại query đã trim dạng text thô, rỗng → 400
func (h *Handler) Pipe(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		response.Fail(c, model.ErrEmptyQuery)
		return
	}

	c.String(http.StatusOK, name)
}

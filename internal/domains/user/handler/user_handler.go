package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookcatalog-backend/internal/domains/user"
	"bookcatalog-backend/internal/shared/apperr"
	"bookcatalog-backend/internal/shared/middleware"
	"bookcatalog-backend/internal/shared/response"
	"bookcatalog-backend/pkg/jwt"
)

// UserHandler xử lý HTTP requests cho user domain
// Struct này là stateless - chỉ chứa dependencies
type UserHandler struct {
	service user.Service
}

// NewUserHandler tạo handler instance
func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Signup xử lý POST /users/signup
func (h *UserHandler) Signup(c *gin.Context) {
	var req user.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.Field("body", err.Error()))
		return
	}

	created, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	c.Header("Location", "/users/"+created.ID.String())
	response.JSON(c, http.StatusCreated, created)
}

// Signin xử lý POST /users/signin
// 201 giữ nguyên status mặc định của POST
func (h *UserHandler) Signin(c *gin.Context) {
	var req user.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.Field("body", err.Error()))
		return
	}

	res, err := h.service.Signin(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, res)
}

// ========================================
// PROFILE
// ========================================

// GetProfile xử lý GET /users/me (cần AuthMiddleware phía trước)
func (h *UserHandler) GetProfile(c *gin.Context) {
	payload, ok := middleware.GetAuthPayload(c)
	if !ok {
		response.Fail(c, jwt.ErrInvalidToken)
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), payload.Sub)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.JSON(c, http.StatusOK, profile)
}

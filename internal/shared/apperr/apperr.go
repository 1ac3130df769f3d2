package apperr

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Error là lỗi nghiệp vụ đã biết HTTP status
// Code = 0 nghĩa là dùng Status làm application code
type Error struct {
	Status  int
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is so sánh theo Status + Message để bản copy từ WithCode vẫn khớp sentinel gốc
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Status == t.Status && e.Message == t.Message
}

// WithCode trả về bản copy mang application code riêng
func (e *Error) WithCode(code int) *Error {
	cp := *e
	cp.Code = code
	return &cp
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Unauthenticated(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

// ========================================
// VALIDATION
// ========================================

// ValidationError mang chi tiết từng field bị reject
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field tạo ValidationError cho một field
func Field(name, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{name: reason}}
}

// Validation chuyển kết quả của ozzo Validate() thành ValidationError.
// InternalError của ozzo (rule lỗi) được trả nguyên để map thành 500.
func Validation(err error) error {
	if err == nil {
		return nil
	}

	var internal validation.InternalError
	if errors.As(err, &internal) {
		return err
	}

	var errs validation.Errors
	if errors.As(err, &errs) {
		fields := make(map[string]string, len(errs))
		flatten("", errs, fields)
		return &ValidationError{Fields: fields}
	}

	return &ValidationError{Fields: map[string]string{"body": err.Error()}}
}

func flatten(prefix string, errs validation.Errors, out map[string]string) {
	for name, fieldErr := range errs {
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}
		var nested validation.Errors
		if errors.As(fieldErr, &nested) {
			flatten(key, nested, out)
			continue
		}
		out[key] = fieldErr.Error()
	}
}

// ========================================
// RESOLUTION (dùng chung cho HTTP và socket)
// ========================================

// Resolved là dạng đã chuẩn hoá của một error tại boundary
type Resolved struct {
	Status  int
	Code    int
	Message string
	Fields  map[string]string
}

// Resolve map error bất kỳ thành status/code/message.
// Lỗi không nhận diện được → 500 với err.Error().
func Resolve(err error) Resolved {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return Resolved{
			Status:  http.StatusBadRequest,
			Code:    http.StatusBadRequest,
			Message: "Validation failed",
			Fields:  vErr.Fields,
		}
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		code := appErr.Code
		if code == 0 {
			code = appErr.Status
		}
		return Resolved{Status: appErr.Status, Code: code, Message: appErr.Message}
	}

	return Resolved{
		Status:  http.StatusInternalServerError,
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}

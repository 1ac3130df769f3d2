package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/shared/apperr"
)

// Envelope là format lỗi thống nhất cho mọi HTTP failure
type Envelope struct {
	Timestamp string   `json:"timestamp"`
	Status    string   `json:"status"`
	Data      FailData `json:"data"`
	Code      int      `json:"code"`
}

type FailData struct {
	Path  string    `json:"path"`
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// JSON trả data trực tiếp, không bọc envelope
func JSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Fail map err qua apperr.Resolve và abort request với envelope lỗi
func Fail(c *gin.Context, err error) {
	resolved := apperr.Resolve(err)

	event := log.Debug()
	if resolved.Status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("path", c.Request.URL.Path).
		Int("status", resolved.Status).
		Msg("Request failed")

	c.AbortWithStatusJSON(resolved.Status, Envelope{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Status:    "fail",
		Data: FailData{
			Path: c.Request.URL.RequestURI(),
			Error: ErrorBody{
				Message: resolved.Message,
				Fields:  resolved.Fields,
			},
		},
		Code: resolved.Code,
	})
}

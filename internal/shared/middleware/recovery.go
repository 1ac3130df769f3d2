package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookcatalog-backend/internal/shared/apperr"
	"bookcatalog-backend/internal/shared/response"
)

var errInternal = apperr.New(http.StatusInternalServerError, "Internal server error")

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Interface("error", err).
					Stack().
					Msg("Panic recovered")

				response.Fail(c, errInternal)
			}
		}()

		c.Next()
	}
}

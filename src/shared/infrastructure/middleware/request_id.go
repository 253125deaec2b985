package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const RequestIDHeader = "X-Request-ID"

// RequestID asigna un identificador de correlación a cada petición.
// Si el cliente ya envía X-Request-ID se respeta; si no, se genera uno.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		c.Set("request_id", reqID)
		c.Header(RequestIDHeader, reqID)
		c.Next()

		if len(c.Errors) > 0 {
			log.Warn().
				Str("request_id", reqID).
				Str("path", c.Request.URL.Path).
				Msg(c.Errors.String())
		}
	}
}

package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/inorbyt/chain-sync/internal/logger"
)

const (
	REQUEST_ID_HEADER = "X-Request-ID"
	REQUEST_ID_KEY    = "request_id"
	maxRequestIDLen   = 128
)

// RequestID tags every request with an id. A caller supplied X-Request-ID is
// kept, otherwise a uuid is generated. The id is echoed in the response header
// and attached to the request logger.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(REQUEST_ID_HEADER)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}

		c.Set(REQUEST_ID_KEY, id)
		c.Header(REQUEST_ID_HEADER, id)
		c.Request = c.Request.WithContext(logger.WithFields(c.Request.Context(), zap.String(REQUEST_ID_KEY, id)))

		c.Next()
	}
}

// GetRequestID returns the id assigned by RequestID
func GetRequestID(c *gin.Context) string {
	return c.GetString(REQUEST_ID_KEY)
}

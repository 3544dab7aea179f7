package middleware

import (
	"time"

	"contact-relay/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger writes one structured access line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.Log.Info("http_request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"origin", c.GetHeader("Origin"),
			"request_id", GetRequestID(c),
		)
	}
}

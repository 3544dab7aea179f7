package middleware

import (
	"net/http"

	"contact-relay/internal/delivery/response"
	"contact-relay/pkg/apperror"
	"contact-relay/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler recovers from panics and answers with the same JSON error
// shape the relay uses.
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		// SECURITY: Never expose internal error details to clients.
		logger.Log.Error("Internal Server Error",
			"panic", recovered,
			"path", c.Request.URL.Path,
			"request_id", GetRequestID(c),
		)
		c.Data(http.StatusInternalServerError, response.ContentTypeJSON, response.ErrorBody(apperror.MsgInternal))
		c.Abort()
	})
}

package middleware

import (
	"errors"
	"net/http"

	"ayurdiet-backend/internal/delivery/http/response"
	"ayurdiet-backend/internal/domain"
	"ayurdiet-backend/pkg/apperror"
	"ayurdiet-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		reqID := c.GetString(string(domain.KeyRequestID))

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				// Never expose internals; log them server-side.
				logger.Log.Error("Request failed", "request_id", reqID, "path", c.Request.URL.Path, "error", err, "cause", appErr.Err)
				response.Error(c, appErr.Code, appErr.Message, nil)
				return
			}
			response.Error(c, appErr.Code, appErr.Message, appErr.Details)
			return
		}

		logger.Log.Error("Unhandled error", "request_id", reqID, "path", c.Request.URL.Path, "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}

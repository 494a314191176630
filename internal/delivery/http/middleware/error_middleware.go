package middleware

import (
	"errors"
	"net/http"

	"portfolio-site/internal/delivery/http/response"
	"portfolio-site/pkg/apperror"
	"portfolio-site/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil && appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("request failed",
					"path", c.FullPath(),
					"status", appErr.Code,
					"error", appErr.Err,
					"request_id", requestID(c),
				)
			}
			response.Error(c, appErr.Code, appErr.Message, appErr.Details)
			return
		}

		// Never expose internal error details to clients.
		logger.Log.Error("unhandled request error",
			"path", c.FullPath(),
			"error", err,
			"request_id", requestID(c),
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}

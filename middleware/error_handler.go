package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GarageLog/garage-log-backend/errors"
	"github.com/GarageLog/garage-log-backend/logger"
	"github.com/GarageLog/garage-log-backend/types"
)

// ErrorHandler converts errors attached to the gin context into the standard
// error envelope. Handlers call c.Error(err) and return; AppError values map
// to their HTTP status, everything else becomes a 500 with a sanitized
// message.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		log := logger.GetLogger()

		if appError, ok := err.(*errors.AppError); ok {
			log.Warnw("Request failed",
				"error_type", string(appError.Type),
				"error_message", appError.Message,
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"status", appError.HTTPStatus)

			errInfo := &types.ErrorInfo{
				Code:    string(appError.Type),
				Message: appError.Message,
			}
			if appError.Detail != "" && (gin.IsDebugging() ||
				appError.Type == errors.ValidationError ||
				appError.Type == errors.NotFoundError ||
				appError.Type == errors.VehicleNotFound ||
				appError.Type == errors.RateLimitError) {
				errInfo.Details = appError.Detail
			}
			Failure(c, appError.HTTPStatus, errInfo)
			return
		}

		if c.Errors.Last().Type == gin.ErrorTypeBind {
			log.Warnw("Request binding error", "error", err, "path", c.Request.URL.Path)
			errInfo := &types.ErrorInfo{
				Code:    string(errors.ValidationError),
				Message: "Failed to bind request",
			}
			if gin.IsDebugging() {
				errInfo.Details = err.Error()
			}
			Failure(c, http.StatusBadRequest, errInfo)
			return
		}

		log.Errorw("Unexpected server error",
			"error", err,
			"path", c.Request.URL.Path,
			"method", c.Request.Method)
		Failure(c, http.StatusInternalServerError, &types.ErrorInfo{
			Code:    string(errors.ServerError),
			Message: "Internal Server Error",
		})
	}
}

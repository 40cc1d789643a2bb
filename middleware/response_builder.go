package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GarageLog/garage-log-backend/types"
)

// Success writes the standard success envelope with the given status and
// payload. Handlers use this for every 2xx body so clients can rely on one
// response shape.
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, types.StandardResponse{
		Success: true,
		Data:    data,
		Meta:    responseMeta(c, nil),
	})
}

// SuccessWithPagination writes the standard success envelope with pagination
// metadata attached under meta.pagination.
func SuccessWithPagination(c *gin.Context, data interface{}, pageInfo *types.PageInfo) {
	c.JSON(http.StatusOK, types.StandardResponse{
		Success: true,
		Data:    data,
		Meta:    responseMeta(c, pageInfo),
	})
}

// Failure writes the standard error envelope. The request ID doubles as the
// trace ID so a client report can be matched against the server logs.
func Failure(c *gin.Context, status int, errInfo *types.ErrorInfo) {
	errInfo.TraceID = c.GetString(RequestIDKey)
	c.JSON(status, types.StandardResponse{
		Success: false,
		Error:   errInfo,
		Meta:    responseMeta(c, nil),
	})
}

// AbortUnauthorized writes the standard error envelope for a failed
// authentication and stops the handler chain.
func AbortUnauthorized(c *gin.Context, message string) {
	errInfo := &types.ErrorInfo{
		Code:    "AUTHENTICATION_ERROR",
		Message: message,
		TraceID: c.GetString(RequestIDKey),
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, types.StandardResponse{
		Success: false,
		Error:   errInfo,
		Meta:    responseMeta(c, nil),
	})
}

func responseMeta(c *gin.Context, pageInfo *types.PageInfo) *types.MetaInfo {
	return &types.MetaInfo{
		RequestID:  c.GetString(RequestIDKey),
		Timestamp:  time.Now().UTC(),
		Pagination: pageInfo,
	}
}

package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/devlarabar/fitnotes-v2/internal"
	"github.com/devlarabar/fitnotes-v2/internal/response"
	"github.com/devlarabar/fitnotes-v2/internal/session"
)

func HandleError(c *gin.Context, logger internal.Logger, err error, status int, msg string) {
	requestID := c.GetString("request_id")
	logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)
	var resp response.APIResponse
	switch status {
	case 400:
		resp = response.BadRequest(msg + ": " + err.Error())
	case 404:
		resp = response.NotFound(msg + ": " + err.Error())
	case 500:
		resp = response.InternalError(msg + ": " + err.Error())
	default:
		resp = response.NewAppError(status, msg+": "+err.Error())
	}
	c.JSON(status, resp)
}

func HandleSuccess(c *gin.Context, logger internal.Logger, data interface{}, meta map[string]any) {
	requestID := c.GetString("request_id")
	logger.Infof("[request_id=%s] Success", requestID)
	c.JSON(200, response.Success(data, meta))
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var appErr *internal.AppError
	switch {
	case errors.Is(err, session.ErrNotFound):
		return 404
	case errors.Is(err, session.ErrUnauthenticated):
		return 401
	case errors.As(err, &appErr):
		return appErr.Code
	}
	return 500
}

package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/MERAJ-droid/SoLverse/internal/logic"
	"github.com/gin-gonic/gin"
)

// Response 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// FailFromError 按业务错误分类映射HTTP状态码
func FailFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, logic.ErrNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, logic.ErrValidation):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, logic.ErrForbidden):
		ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, logic.ErrDuplicate):
		ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		ErrorResponse(c, http.StatusGatewayTimeout, err.Error())
	case errors.Is(err, logic.ErrRemoteCall):
		ErrorResponse(c, http.StatusBadGateway, err.Error())
	default:
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
	}
}

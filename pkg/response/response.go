package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/serhatyuna/cengonline-backend/pkg/errors"
)

// Response 统一响应结构
// 错误响应携带 status（与 HTTP 状态码一致）、业务码 code 与 message
type Response struct {
	Status  int         `json:"status,omitempty"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 201 创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, Response{
		Status:  httpStatus,
		Code:    code,
		Message: message,
	})
}

// ── 常见快捷方式 ──

// BadRequest 400
func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, code int, message string) {
	Error(c, http.StatusUnauthorized, code, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, code int, message string) {
	Error(c, http.StatusForbidden, code, message)
}

// NotFound 404
func NotFound(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// Conflict 409
func Conflict(c *gin.Context, code int, message string) {
	Error(c, http.StatusConflict, code, message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, 50000, "服务器内部错误")
}

// StatusOf 业务错误分类到 HTTP 状态码的映射
func StatusOf(kind pkgerrors.Kind) int {
	switch kind {
	case pkgerrors.KindNotFound:
		return http.StatusNotFound
	case pkgerrors.KindForbidden:
		return http.StatusForbidden
	case pkgerrors.KindBadRequest:
		return http.StatusBadRequest
	case pkgerrors.KindConflict:
		return http.StatusConflict
	case pkgerrors.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// FromError 将业务错误写为响应；非业务错误一律 500，不向客户端暴露细节
func FromError(c *gin.Context, err error) {
	appErr, ok := pkgerrors.As(err)
	if !ok || appErr.Kind == pkgerrors.KindInternal {
		InternalError(c)
		return
	}
	Error(c, StatusOf(appErr.Kind), appErr.Code, appErr.Message)
}

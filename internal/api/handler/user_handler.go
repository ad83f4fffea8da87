package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/serhatyuna/cengonline-backend/internal/service"
	"github.com/serhatyuna/cengonline-backend/pkg/response"
)

// UserHandler 用户模块 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// ListUsers 获取用户列表
// GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	users, err := h.userSvc.List(c.Request.Context(), p)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, users)
}

// GetUser 获取用户详情
// GET /api/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	user, err := h.userSvc.GetByID(c.Request.Context(), p, id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, user)
}

// AttendClass 学生选课
// POST /api/users/attend-class/:id
func (h *UserHandler) AttendClass(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	courseID, ok := parseID(c, "id")
	if !ok {
		return
	}

	course, err := h.userSvc.Enroll(c.Request.Context(), p, courseID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, course)
}

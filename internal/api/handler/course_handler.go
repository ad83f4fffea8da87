package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/serhatyuna/cengonline-backend/internal/dto"
	"github.com/serhatyuna/cengonline-backend/internal/service"
	"github.com/serhatyuna/cengonline-backend/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// ListCourses 课程目录
// GET /api/courses
func (h *CourseHandler) ListCourses(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	courses, err := h.courseSvc.List(c.Request.Context(), p)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, courses)
}

// ListMyCourses 教师所授或学生已选课程
// GET /api/courses/mine
func (h *CourseHandler) ListMyCourses(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	courses, err := h.courseSvc.ListMine(c.Request.Context(), p)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, courses)
}

// GetCourse 获取课程详情
// GET /api/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	course, err := h.courseSvc.GetByID(c.Request.Context(), p, id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, course)
}

// CreateCourse 创建课程
// POST /api/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	var req dto.CourseRequest
	if !bindJSON(c, &req) {
		return
	}

	course, err := h.courseSvc.Create(c.Request.Context(), p, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, course)
}

// UpdateCourse 更新课程
// PUT /api/courses/:id
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CourseRequest
	if !bindJSON(c, &req) {
		return
	}

	course, err := h.courseSvc.Update(c.Request.Context(), p, id, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, course)
}

// DeleteCourse 删除课程
// DELETE /api/courses/:id
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.courseSvc.Delete(c.Request.Context(), p, id); err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, nil)
}

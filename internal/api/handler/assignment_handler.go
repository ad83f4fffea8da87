package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/serhatyuna/cengonline-backend/internal/dto"
	"github.com/serhatyuna/cengonline-backend/internal/service"
	"github.com/serhatyuna/cengonline-backend/pkg/response"
)

// AssignmentHandler 作业模块 HTTP 处理器
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(assignmentSvc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc}
}

// ListByCourse GET /api/assignments/course/:course_id
func (h *AssignmentHandler) ListByCourse(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	courseID, ok := parseID(c, "course_id")
	if !ok {
		return
	}

	list, err := h.assignmentSvc.ListByCourse(c.Request.Context(), p, courseID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, list)
}

// Get GET /api/assignments/:id/course/:course_id
func (h *AssignmentHandler) Get(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	courseID, ok := parseID(c, "course_id")
	if !ok {
		return
	}

	a, err := h.assignmentSvc.Get(c.Request.Context(), p, courseID, id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, a)
}

// Create POST /api/assignments/:course_id
func (h *AssignmentHandler) Create(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	courseID, ok := parseID(c, "course_id")
	if !ok {
		return
	}
	var req dto.AssignmentRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.assignmentSvc.Create(c.Request.Context(), p, courseID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, a)
}

// Update PUT /api/assignments/:id
func (h *AssignmentHandler) Update(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AssignmentRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.assignmentSvc.Update(c.Request.Context(), p, id, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, a)
}

// Delete DELETE /api/assignments/:id
func (h *AssignmentHandler) Delete(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.assignmentSvc.Delete(c.Request.Context(), p, id); err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, nil)
}

// Calendar 作业截止时间日历订阅
// GET /api/assignments/course/:course_id/calendar.ics
func (h *AssignmentHandler) Calendar(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	courseID, ok := parseID(c, "course_id")
	if !ok {
		return
	}

	body, err := h.assignmentSvc.CalendarByCourse(c.Request.Context(), p, courseID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=course_%d.ics", courseID))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", body)
}

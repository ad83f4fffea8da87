package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/serhatyuna/cengonline-backend/internal/dto"
	"github.com/serhatyuna/cengonline-backend/internal/service"
	"github.com/serhatyuna/cengonline-backend/pkg/response"
)

// AnnouncementHandler 公告模块 HTTP 处理器
type AnnouncementHandler struct {
	announcementSvc service.AnnouncementService
}

// NewAnnouncementHandler 创建 AnnouncementHandler
func NewAnnouncementHandler(announcementSvc service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementSvc: announcementSvc}
}

// ListByCourse GET /api/announcements/course/:course_id
func (h *AnnouncementHandler) ListByCourse(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	courseID, ok := parseID(c, "course_id")
	if !ok {
		return
	}

	list, err := h.announcementSvc.ListByCourse(c.Request.Context(), p, courseID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, list)
}

// Get GET /api/announcements/:id/course/:course_id
func (h *AnnouncementHandler) Get(c *gin.Context) {
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

	a, err := h.announcementSvc.Get(c.Request.Context(), p, courseID, id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, a)
}

// Create POST /api/announcements/:course_id
func (h *AnnouncementHandler) Create(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	courseID, ok := parseID(c, "course_id")
	if !ok {
		return
	}
	var req dto.AnnouncementRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.announcementSvc.Create(c.Request.Context(), p, courseID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, a)
}

// Update PUT /api/announcements/:id
func (h *AnnouncementHandler) Update(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AnnouncementRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.announcementSvc.Update(c.Request.Context(), p, id, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, a)
}

// Delete DELETE /api/announcements/:id
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.announcementSvc.Delete(c.Request.Context(), p, id); err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, nil)
}

package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/serhatyuna/cengonline-backend/internal/dto"
	"github.com/serhatyuna/cengonline-backend/internal/service"
	"github.com/serhatyuna/cengonline-backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SubmissionHandler 作业提交模块 HTTP 处理器
type SubmissionHandler struct {
	submissionSvc service.SubmissionService
}

// NewSubmissionHandler 创建 SubmissionHandler
func NewSubmissionHandler(submissionSvc service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionSvc: submissionSvc}
}

// ListOwned 教师所授课程下的全部提交
// GET /api/submissions
func (h *SubmissionHandler) ListOwned(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	list, err := h.submissionSvc.ListOwned(c.Request.Context(), p)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, list)
}

// ListByAssignment GET /api/submissions/assignment/:id
func (h *SubmissionHandler) ListByAssignment(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	list, err := h.submissionSvc.ListByAssignment(c.Request.Context(), p, id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, list)
}

// Export 导出作业提交
// GET /api/submissions/assignment/:id/export
func (h *SubmissionHandler) Export(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	buf, filename, err := h.submissionSvc.ExportByAssignment(c.Request.Context(), p, id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Get GET /api/submissions/:id
func (h *SubmissionHandler) Get(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	sub, err := h.submissionSvc.GetByID(c.Request.Context(), p, id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, sub)
}

// ListByStudent GET /api/submissions/student/:id
func (h *SubmissionHandler) ListByStudent(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	list, err := h.submissionSvc.ListByStudent(c.Request.Context(), p, id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, list)
}

// Create POST /api/submissions/:assignment_id
func (h *SubmissionHandler) Create(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	assignmentID, ok := parseID(c, "assignment_id")
	if !ok {
		return
	}
	var req dto.SubmissionRequest
	if !bindJSON(c, &req) {
		return
	}

	sub, err := h.submissionSvc.Create(c.Request.Context(), p, assignmentID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, sub)
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/serhatyuna/cengonline-backend/internal/dto"
	"github.com/serhatyuna/cengonline-backend/internal/service"
	"github.com/serhatyuna/cengonline-backend/pkg/response"
)

// PostHandler 讨论帖模块 HTTP 处理器
type PostHandler struct {
	postSvc service.PostService
}

// NewPostHandler 创建 PostHandler
func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{postSvc: postSvc}
}

// ListByCourse GET /api/posts/course/:course_id
func (h *PostHandler) ListByCourse(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	courseID, ok := parseID(c, "course_id")
	if !ok {
		return
	}

	list, err := h.postSvc.ListByCourse(c.Request.Context(), p, courseID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, list)
}

// Get GET /api/posts/:id/course/:course_id
func (h *PostHandler) Get(c *gin.Context) {
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

	post, err := h.postSvc.Get(c.Request.Context(), p, courseID, id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, post)
}

// Create POST /api/posts/:course_id
func (h *PostHandler) Create(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	courseID, ok := parseID(c, "course_id")
	if !ok {
		return
	}
	var req dto.PostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.postSvc.Create(c.Request.Context(), p, courseID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, post)
}

// Update PUT /api/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.PostRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := h.postSvc.Update(c.Request.Context(), p, id, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, post)
}

// Delete DELETE /api/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.postSvc.Delete(c.Request.Context(), p, id); err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, nil)
}

// ── 评论 ──

// ListComments GET /api/comments/post/:post_id
func (h *PostHandler) ListComments(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	postID, ok := parseID(c, "post_id")
	if !ok {
		return
	}

	list, err := h.postSvc.ListComments(c.Request.Context(), p, postID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, list)
}

// AddComment POST /api/comments/post/:post_id
func (h *PostHandler) AddComment(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	postID, ok := parseID(c, "post_id")
	if !ok {
		return
	}
	var req dto.CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.postSvc.AddComment(c.Request.Context(), p, postID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, comment)
}

// DeleteComment DELETE /api/comments/:id
func (h *PostHandler) DeleteComment(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.postSvc.DeleteComment(c.Request.Context(), p, id); err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, nil)
}

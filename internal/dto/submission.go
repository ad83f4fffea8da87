package dto

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ── 作业提交模块 DTO ──

// SubmissionRequest 提交作业请求
type SubmissionRequest struct {
	Content string `json:"content" binding:"required"`
}

// Validate 校验提交请求
func (r *SubmissionRequest) Validate() error {
	r.Content = strings.TrimSpace(r.Content)
	return validation.ValidateStruct(r,
		validation.Field(&r.Content, validation.Required),
	)
}

// SubmissionResponse 提交响应
type SubmissionResponse struct {
	ID           int64  `json:"id"`
	AssignmentID int64  `json:"assignment_id"`
	UserID       int64  `json:"user_id"`
	Content      string `json:"content"`
	CreatedAt    string `json:"created_at"`
}

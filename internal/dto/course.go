package dto

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ── 课程模块 DTO ──

// CourseRequest 创建/更新课程请求
type CourseRequest struct {
	Title string `json:"title" binding:"required"`
	Term  string `json:"term"  binding:"required"`
}

// Validate 校验课程请求
func (r *CourseRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Term = strings.TrimSpace(r.Term)
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Required, validation.RuneLength(2, 100)),
		validation.Field(&r.Term, validation.Required, validation.RuneLength(2, 100)),
	)
}

// CourseResponse 课程信息响应
type CourseResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Term      string `json:"term"`
	TeacherID int64  `json:"teacher_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

package dto

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DueDateLayout 作业截止时间格式（dd.MM.yyyy HH:mm）
const DueDateLayout = "02.01.2006 15:04"

// ── 公告 ──

// AnnouncementRequest 创建/更新公告请求
type AnnouncementRequest struct {
	Description string `json:"description" binding:"required"`
}

// Validate 校验公告请求
func (r *AnnouncementRequest) Validate() error {
	r.Description = strings.TrimSpace(r.Description)
	return validation.ValidateStruct(r,
		validation.Field(&r.Description, validation.Required),
	)
}

// AnnouncementResponse 公告响应
type AnnouncementResponse struct {
	ID          int64  `json:"id"`
	CourseID    int64  `json:"course_id"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ── 作业 ──

// AssignmentRequest 创建/更新作业请求
type AssignmentRequest struct {
	Title       string `json:"title"       binding:"required"`
	Description string `json:"description" binding:"required"`
	DueDate     string `json:"due_date"    binding:"required"`
}

// Validate 校验作业请求
func (r *AssignmentRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.DueDate = strings.TrimSpace(r.DueDate)
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Required, validation.RuneLength(2, 100)),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.DueDate, validation.Required, validation.Date(DueDateLayout)),
	)
}

// ParseDueDate 按 DueDateLayout 在指定时区解析截止时间
func (r *AssignmentRequest) ParseDueDate(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DueDateLayout, r.DueDate, loc)
}

// AssignmentResponse 作业响应
type AssignmentResponse struct {
	ID          int64  `json:"id"`
	CourseID    int64  `json:"course_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ── 讨论帖与评论 ──

// PostRequest 创建/更新帖子请求
type PostRequest struct {
	Body string `json:"body" binding:"required"`
}

// Validate 校验帖子请求
func (r *PostRequest) Validate() error {
	r.Body = strings.TrimSpace(r.Body)
	return validation.ValidateStruct(r,
		validation.Field(&r.Body, validation.Required),
	)
}

// PostResponse 帖子响应
type PostResponse struct {
	ID        int64  `json:"id"`
	CourseID  int64  `json:"course_id"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CommentRequest 创建评论请求
type CommentRequest struct {
	Body string `json:"body" binding:"required"`
}

// Validate 校验评论请求
func (r *CommentRequest) Validate() error {
	r.Body = strings.TrimSpace(r.Body)
	return validation.ValidateStruct(r,
		validation.Field(&r.Body, validation.Required),
	)
}

// CommentResponse 评论响应
type CommentResponse struct {
	ID        int64  `json:"id"`
	PostID    int64  `json:"post_id"`
	UserID    int64  `json:"user_id"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

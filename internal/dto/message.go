package dto

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ── 私信模块 DTO ──

// MessageRequest 发送私信请求
type MessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// Validate 校验私信请求
func (r *MessageRequest) Validate() error {
	r.Content = strings.TrimSpace(r.Content)
	return validation.ValidateStruct(r,
		validation.Field(&r.Content, validation.Required),
	)
}

// MessageResponse 私信响应
type MessageResponse struct {
	ID         int64  `json:"id"`
	SenderID   int64  `json:"sender_id"`
	ReceiverID int64  `json:"receiver_id"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at"`
}

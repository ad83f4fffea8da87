package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/serhatyuna/cengonline-backend/internal/dto"
	"github.com/serhatyuna/cengonline-backend/internal/service"
	"github.com/serhatyuna/cengonline-backend/pkg/response"
)

// MessageHandler 私信模块 HTTP 处理器
type MessageHandler struct {
	messageSvc service.MessageService
}

// NewMessageHandler 创建 MessageHandler
func NewMessageHandler(messageSvc service.MessageService) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc}
}

// Conversation 与指定用户之间的私信
// GET /api/messages/:receiver_id
func (h *MessageHandler) Conversation(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	otherID, ok := parseID(c, "receiver_id")
	if !ok {
		return
	}

	list, err := h.messageSvc.Conversation(c.Request.Context(), p, otherID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, list)
}

// Send 发送私信
// POST /api/messages/:receiver_id
func (h *MessageHandler) Send(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	receiverID, ok := parseID(c, "receiver_id")
	if !ok {
		return
	}
	var req dto.MessageRequest
	if !bindJSON(c, &req) {
		return
	}

	msg, err := h.messageSvc.Send(c.Request.Context(), p, receiverID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, msg)
}

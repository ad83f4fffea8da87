package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/serhatyuna/cengonline-backend/internal/dto"
	"github.com/serhatyuna/cengonline-backend/internal/model"
	"github.com/serhatyuna/cengonline-backend/internal/policy"
	"github.com/serhatyuna/cengonline-backend/internal/repository"
	"github.com/serhatyuna/cengonline-backend/pkg/mq"
)

// MessageService 私信业务接口
type MessageService interface {
	// Send 向 receiverID 发送私信；不能发给自己
	Send(ctx context.Context, p policy.Principal, receiverID int64, req *dto.MessageRequest) (*dto.MessageResponse, error)
	// Conversation 按发送时间正序返回与 otherID 之间的全部私信
	Conversation(ctx context.Context, p policy.Principal, otherID int64) ([]dto.MessageResponse, error)
}

type messageService struct {
	access
	events mq.Publisher
}

// NewMessageService 创建 MessageService 实例
func NewMessageService(repo *repository.Repository, events mq.Publisher, logger *zap.Logger) MessageService {
	return &messageService{access: access{repo: repo, logger: logger}, events: events}
}

func (s *messageService) Send(ctx context.Context, p policy.Principal, receiverID int64, req *dto.MessageRequest) (*dto.MessageResponse, error) {
	if err := gate(p, policy.ActionMessageSend); err != nil {
		return nil, err
	}

	rel := policy.ResolveParty(p, receiverID)
	if err := authorize(p, policy.ActionMessageSend, rel, ErrMessageToSelf); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	if _, err := s.repo.User.GetByID(ctx, receiverID); err != nil {
		return nil, s.notFoundOr(err, ErrReceiverNotFound, "查询收信人失败", zap.Int64("receiver_id", receiverID))
	}

	m := &model.Message{
		SenderID:   p.UserID,
		ReceiverID: receiverID,
		Content:    req.Content,
	}
	if err := s.repo.Message.Create(ctx, m); err != nil {
		s.logger.Error("发送私信失败", zap.Int64("receiver_id", receiverID), zap.Error(err))
		return nil, err
	}

	publish(ctx, s.events, s.logger, mq.RoutingMessageSent, messageSentEvent{
		MessageID:  m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
	})

	resp := toMessageResponse(m)
	return &resp, nil
}

func (s *messageService) Conversation(ctx context.Context, p policy.Principal, otherID int64) ([]dto.MessageResponse, error) {
	if err := gate(p, policy.ActionMessageRead); err != nil {
		return nil, err
	}
	if err := authorize(p, policy.ActionMessageRead, policy.ResolveParty(p, otherID)); err != nil {
		return nil, err
	}
	if _, err := s.repo.User.GetByID(ctx, otherID); err != nil {
		return nil, s.notFoundOr(err, ErrReceiverNotFound, "查询对方用户失败", zap.Int64("user_id", otherID))
	}

	list, err := s.repo.Message.ListConversation(ctx, p.UserID, otherID)
	if err != nil {
		s.logger.Error("查询私信会话失败", zap.Int64("user_id", otherID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.MessageResponse, 0, len(list))
	for i := range list {
		result = append(result, toMessageResponse(&list[i]))
	}
	return result, nil
}

func toMessageResponse(m *model.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		CreatedAt:  formatTime(m.CreatedAt),
	}
}

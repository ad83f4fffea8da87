package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/serhatyuna/cengonline-backend/pkg/mq"
)

// 领域事件载荷

type announcementCreatedEvent struct {
	AnnouncementID int64  `json:"announcement_id"`
	CourseID       int64  `json:"course_id"`
	Description    string `json:"description"`
}

type submissionCreatedEvent struct {
	SubmissionID int64 `json:"submission_id"`
	AssignmentID int64 `json:"assignment_id"`
	CourseID     int64 `json:"course_id"`
	StudentID    int64 `json:"student_id"`
	TeacherID    int64 `json:"teacher_id"`
}

type messageSentEvent struct {
	MessageID  int64 `json:"message_id"`
	SenderID   int64 `json:"sender_id"`
	ReceiverID int64 `json:"receiver_id"`
}

// publish 发布领域事件；事件属于尽力而为的通知，失败只记录日志，不影响主流程
func publish(ctx context.Context, pub mq.Publisher, logger *zap.Logger, routingKey string, payload interface{}) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, routingKey, payload); err != nil {
		logger.Warn("发布领域事件失败", zap.String("routing_key", routingKey), zap.Error(err))
	}
}

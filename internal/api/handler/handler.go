package handler

import "github.com/serhatyuna/cengonline-backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Course       *CourseHandler
	Announcement *AnnouncementHandler
	Assignment   *AssignmentHandler
	Submission   *SubmissionHandler
	Post         *PostHandler
	Message      *MessageHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		User:         NewUserHandler(svc.User),
		Course:       NewCourseHandler(svc.Course),
		Announcement: NewAnnouncementHandler(svc.Announcement),
		Assignment:   NewAssignmentHandler(svc.Assignment),
		Submission:   NewSubmissionHandler(svc.Submission),
		Post:         NewPostHandler(svc.Post),
		Message:      NewMessageHandler(svc.Message),
	}
}

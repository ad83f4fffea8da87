package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/serhatyuna/cengonline-backend/config"
	"github.com/serhatyuna/cengonline-backend/internal/repository"
	"github.com/serhatyuna/cengonline-backend/pkg/jwt"
	"github.com/serhatyuna/cengonline-backend/pkg/mq"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	User         UserService
	Course       CourseService
	Announcement AnnouncementService
	Assignment   AssignmentService
	Submission   SubmissionService
	Post         PostService
	Message      MessageService
}

// NewService 创建 Service 聚合
// blacklist 为 nil 时登出不可用；events 为 nil 时不发布领域事件
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	events mq.Publisher,
	logger *zap.Logger,
) *Service {
	loc, err := time.LoadLocation(cfg.Database.Timezone)
	if err != nil {
		logger.Warn("加载时区失败，使用 UTC", zap.String("timezone", cfg.Database.Timezone), zap.Error(err))
		loc = time.UTC
	}

	return &Service{
		Auth:         NewAuthService(repo, jwtMgr, blacklist, logger),
		User:         NewUserService(repo, logger),
		Course:       NewCourseService(repo, logger),
		Announcement: NewAnnouncementService(repo, events, logger),
		Assignment:   NewAssignmentService(repo, loc, logger),
		Submission:   NewSubmissionService(repo, events, logger),
		Post:         NewPostService(repo, logger),
		Message:      NewMessageService(repo, events, logger),
	}
}

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

// AnnouncementService 课程公告业务接口
type AnnouncementService interface {
	// ListByCourse 按创建时间倒序返回课程公告
	ListByCourse(ctx context.Context, p policy.Principal, courseID int64) ([]dto.AnnouncementResponse, error)
	Get(ctx context.Context, p policy.Principal, courseID, id int64) (*dto.AnnouncementResponse, error)
	Create(ctx context.Context, p policy.Principal, courseID int64, req *dto.AnnouncementRequest) (*dto.AnnouncementResponse, error)
	Update(ctx context.Context, p policy.Principal, id int64, req *dto.AnnouncementRequest) (*dto.AnnouncementResponse, error)
	Delete(ctx context.Context, p policy.Principal, id int64) error
}

type announcementService struct {
	access
	events mq.Publisher
}

// NewAnnouncementService 创建 AnnouncementService 实例
func NewAnnouncementService(repo *repository.Repository, events mq.Publisher, logger *zap.Logger) AnnouncementService {
	return &announcementService{access: access{repo: repo, logger: logger}, events: events}
}

func (s *announcementService) ListByCourse(ctx context.Context, p policy.Principal, courseID int64) ([]dto.AnnouncementResponse, error) {
	if err := gate(p, policy.ActionContentRead); err != nil {
		return nil, err
	}
	if _, _, err := s.authorizeCourse(ctx, p, policy.ActionContentRead, courseID, ErrCourseNotFound); err != nil {
		return nil, err
	}

	list, err := s.repo.Announcement.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("列出公告失败", zap.Int64("course_id", courseID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.AnnouncementResponse, 0, len(list))
	for i := range list {
		result = append(result, toAnnouncementResponse(&list[i]))
	}
	return result, nil
}

func (s *announcementService) Get(ctx context.Context, p policy.Principal, courseID, id int64) (*dto.AnnouncementResponse, error) {
	if err := gate(p, policy.ActionContentRead); err != nil {
		return nil, err
	}
	if _, _, err := s.authorizeCourse(ctx, p, policy.ActionContentRead, courseID, ErrCourseNotFound); err != nil {
		return nil, err
	}

	a, err := s.repo.Announcement.GetByID(ctx, id)
	if err != nil {
		return nil, s.notFoundOr(err, ErrAnnouncementNotFound, "查询公告失败", zap.Int64("announcement_id", id))
	}
	// 公告必须属于路径中的课程
	if a.CourseID != courseID {
		return nil, ErrAnnouncementNotFound
	}

	resp := toAnnouncementResponse(a)
	return &resp, nil
}

// ────────────────────── Create ──────────────────────

func (s *announcementService) Create(ctx context.Context, p policy.Principal, courseID int64, req *dto.AnnouncementRequest) (*dto.AnnouncementResponse, error) {
	if err := gate(p, policy.ActionContentWrite); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, invalidInput(err)
	}
	if _, _, err := s.authorizeCourse(ctx, p, policy.ActionContentWrite, courseID, ErrCourseNotFound); err != nil {
		return nil, err
	}

	a := &model.Announcement{CourseID: courseID, Description: req.Description}
	if err := s.repo.Announcement.Create(ctx, a); err != nil {
		s.logger.Error("创建公告失败", zap.Int64("course_id", courseID), zap.Error(err))
		return nil, err
	}

	publish(ctx, s.events, s.logger, mq.RoutingAnnouncementCreated, announcementCreatedEvent{
		AnnouncementID: a.ID,
		CourseID:       a.CourseID,
		Description:    a.Description,
	})

	resp := toAnnouncementResponse(a)
	return &resp, nil
}

// ────────────────────── Update / Delete ──────────────────────

func (s *announcementService) Update(ctx context.Context, p policy.Principal, id int64, req *dto.AnnouncementRequest) (*dto.AnnouncementResponse, error) {
	if err := gate(p, policy.ActionContentWrite); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	a, err := s.load(ctx, p, id)
	if err != nil {
		return nil, err
	}

	a.Description = req.Description
	if err := s.repo.Announcement.Update(ctx, a); err != nil {
		s.logger.Error("更新公告失败", zap.Int64("announcement_id", id), zap.Error(err))
		return nil, err
	}

	resp := toAnnouncementResponse(a)
	return &resp, nil
}

func (s *announcementService) Delete(ctx context.Context, p policy.Principal, id int64) error {
	if err := gate(p, policy.ActionContentWrite); err != nil {
		return err
	}
	if _, err := s.load(ctx, p, id); err != nil {
		return err
	}

	if err := s.repo.Announcement.Delete(ctx, id); err != nil {
		s.logger.Error("删除公告失败", zap.Int64("announcement_id", id), zap.Error(err))
		return err
	}
	return nil
}

// load 加载公告并校验调用者是所属课程的授课教师
func (s *announcementService) load(ctx context.Context, p policy.Principal, id int64) (*model.Announcement, error) {
	a, err := s.repo.Announcement.GetByID(ctx, id)
	if err != nil {
		return nil, s.notFoundOr(err, ErrAnnouncementNotFound, "查询公告失败", zap.Int64("announcement_id", id))
	}
	if _, _, err := s.authorizeCourse(ctx, p, policy.ActionContentWrite, a.CourseID, ErrAnnouncementNotFound); err != nil {
		return nil, err
	}
	return a, nil
}

func toAnnouncementResponse(a *model.Announcement) dto.AnnouncementResponse {
	return dto.AnnouncementResponse{
		ID:          a.ID,
		CourseID:    a.CourseID,
		Description: a.Description,
		CreatedAt:   formatTime(a.CreatedAt),
		UpdatedAt:   formatTime(a.UpdatedAt),
	}
}

package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/serhatyuna/cengonline-backend/internal/dto"
	"github.com/serhatyuna/cengonline-backend/internal/model"
	"github.com/serhatyuna/cengonline-backend/internal/policy"
	"github.com/serhatyuna/cengonline-backend/internal/repository"
)

// CourseService 课程业务接口
type CourseService interface {
	// List 返回全部课程（课程目录）
	List(ctx context.Context, p policy.Principal) ([]dto.CourseResponse, error)
	// ListMine 教师返回所授课程，学生返回已选课程
	ListMine(ctx context.Context, p policy.Principal) ([]dto.CourseResponse, error)
	GetByID(ctx context.Context, p policy.Principal, id int64) (*dto.CourseResponse, error)
	Create(ctx context.Context, p policy.Principal, req *dto.CourseRequest) (*dto.CourseResponse, error)
	Update(ctx context.Context, p policy.Principal, id int64, req *dto.CourseRequest) (*dto.CourseResponse, error)
	// Delete 级联删除课程下的公告、作业、提交、帖子、评论与选课关系
	Delete(ctx context.Context, p policy.Principal, id int64) error
}

type courseService struct {
	access
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{access: access{repo: repo, logger: logger}}
}

// ────────────────────── 查询 ──────────────────────

func (s *courseService) List(ctx context.Context, p policy.Principal) ([]dto.CourseResponse, error) {
	if err := gate(p, policy.ActionCourseList); err != nil {
		return nil, err
	}
	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}
	return toCourseResponses(courses), nil
}

func (s *courseService) ListMine(ctx context.Context, p policy.Principal) ([]dto.CourseResponse, error) {
	if err := gate(p, policy.ActionCourseList); err != nil {
		return nil, err
	}

	var (
		courses []model.Course
		err     error
	)
	if p.IsTeacher() {
		courses, err = s.repo.Course.ListByTeacher(ctx, p.UserID)
	} else {
		courses, err = s.repo.Course.ListByStudent(ctx, p.UserID)
	}
	if err != nil {
		s.logger.Error("列出我的课程失败", zap.Int64("user_id", p.UserID), zap.Error(err))
		return nil, err
	}
	return toCourseResponses(courses), nil
}

func (s *courseService) GetByID(ctx context.Context, p policy.Principal, id int64) (*dto.CourseResponse, error) {
	if err := gate(p, policy.ActionCourseRead); err != nil {
		return nil, err
	}
	course, _, err := s.authorizeCourse(ctx, p, policy.ActionCourseRead, id, ErrCourseNotFound)
	if err != nil {
		return nil, err
	}
	resp := toCourseResponse(course)
	return &resp, nil
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, p policy.Principal, req *dto.CourseRequest) (*dto.CourseResponse, error) {
	if err := gate(p, policy.ActionCourseCreate); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	// 令牌有效但用户已被删除
	if _, err := s.repo.User.GetByID(ctx, p.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.Int64("user_id", p.UserID), zap.Error(err))
		return nil, err
	}

	course := &model.Course{
		Title:     req.Title,
		Term:      req.Term,
		TeacherID: p.UserID,
	}
	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("创建课程失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("课程创建成功", zap.Int64("course_id", course.ID), zap.Int64("teacher_id", p.UserID))

	resp := toCourseResponse(course)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *courseService) Update(ctx context.Context, p policy.Principal, id int64, req *dto.CourseRequest) (*dto.CourseResponse, error) {
	if err := gate(p, policy.ActionCourseUpdate); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	course, _, err := s.authorizeCourse(ctx, p, policy.ActionCourseUpdate, id, ErrCourseNotFound)
	if err != nil {
		return nil, err
	}

	course.Title = req.Title
	course.Term = req.Term
	if err := s.repo.Course.Update(ctx, course); err != nil {
		s.logger.Error("更新课程失败", zap.Int64("course_id", id), zap.Error(err))
		return nil, err
	}

	resp := toCourseResponse(course)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *courseService) Delete(ctx context.Context, p policy.Principal, id int64) error {
	if err := gate(p, policy.ActionCourseDelete); err != nil {
		return err
	}
	if _, _, err := s.authorizeCourse(ctx, p, policy.ActionCourseDelete, id, ErrCourseNotFound); err != nil {
		return err
	}

	if err := s.repo.Course.Delete(ctx, id); err != nil {
		s.logger.Error("删除课程失败", zap.Int64("course_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("课程已删除", zap.Int64("course_id", id), zap.Int64("teacher_id", p.UserID))
	return nil
}

// ── 内部辅助方法 ──

func toCourseResponse(c *model.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:        c.ID,
		Title:     c.Title,
		Term:      c.Term,
		TeacherID: c.TeacherID,
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}

func toCourseResponses(courses []model.Course) []dto.CourseResponse {
	result := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		result = append(result, toCourseResponse(&courses[i]))
	}
	return result
}

package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/serhatyuna/cengonline-backend/internal/dto"
	"github.com/serhatyuna/cengonline-backend/internal/policy"
	"github.com/serhatyuna/cengonline-backend/internal/repository"
)

// UserService 用户业务接口
type UserService interface {
	// List 返回全部用户；没有任何用户时返回 ErrNoUserYet
	List(ctx context.Context, p policy.Principal) ([]dto.UserResponse, error)
	GetByID(ctx context.Context, p policy.Principal, id int64) (*dto.UserResponse, error)
	// Enroll 学生选修课程
	Enroll(ctx context.Context, p policy.Principal, courseID int64) (*dto.CourseResponse, error)
}

type userService struct {
	access
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{access: access{repo: repo, logger: logger}}
}

func (s *userService) List(ctx context.Context, p policy.Principal) ([]dto.UserResponse, error) {
	if err := gate(p, policy.ActionUserList); err != nil {
		return nil, err
	}

	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("列出用户失败", zap.Error(err))
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrNoUserYet
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, toUserResponse(&users[i]))
	}
	return result, nil
}

func (s *userService) GetByID(ctx context.Context, p policy.Principal, id int64) (*dto.UserResponse, error) {
	if err := gate(p, policy.ActionUserRead); err != nil {
		return nil, err
	}

	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		return nil, s.notFoundOr(err, ErrUserNotFound, "查询用户失败", zap.Int64("user_id", id))
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── Enroll ──────────────────────

func (s *userService) Enroll(ctx context.Context, p policy.Principal, courseID int64) (*dto.CourseResponse, error) {
	if err := gate(p, policy.ActionCourseEnroll); err != nil {
		return nil, err
	}

	course, rel, err := s.course(ctx, p, courseID)
	if err != nil {
		return nil, err
	}
	if err := authorize(p, policy.ActionCourseEnroll, rel, ErrAlreadyEnrolled); err != nil {
		return nil, err
	}

	if err := s.repo.Course.AddStudent(ctx, courseID, p.UserID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEnrollConflict
		}
		s.logger.Error("写入选课关系失败", zap.Int64("course_id", courseID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("学生选课成功", zap.Int64("course_id", courseID), zap.Int64("student_id", p.UserID))

	resp := toCourseResponse(course)
	return &resp, nil
}

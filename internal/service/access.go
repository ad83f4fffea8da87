package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/serhatyuna/cengonline-backend/internal/model"
	"github.com/serhatyuna/cengonline-backend/internal/policy"
	"github.com/serhatyuna/cengonline-backend/internal/repository"
	pkgerrors "github.com/serhatyuna/cengonline-backend/pkg/errors"
)

// access 资源服务共用的鉴权辅助：加载课程、解析关系、调用策略判定
// 所有服务都经由这里走同一套关系判定与策略表
type access struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// gate 粗粒度角色闸门，在加载任何实体之前调用
func gate(p policy.Principal, action policy.Action) error {
	if policy.RoleAllowed(p.Role, action) {
		return nil
	}
	return policy.Authorize(p, action, policy.Relationship{}).Err()
}

// authorize 执行策略判定
// 拒绝时从 candidates 中挑选与判定分类一致的模块错误，没有则返回通用错误
func authorize(p policy.Principal, action policy.Action, rel policy.Relationship, candidates ...error) error {
	d := policy.Authorize(p, action, rel)
	if d.Allowed {
		return nil
	}
	for _, e := range candidates {
		if pkgerrors.KindOf(e) == d.Kind {
			return e
		}
	}
	return d.Err()
}

// course 加载课程及选课名单并计算主体关系
// 课程不存在时返回 ErrCourseNotFound
func (a access) course(ctx context.Context, p policy.Principal, courseID int64) (*model.Course, policy.Relationship, error) {
	course, err := a.repo.Course.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, policy.Relationship{}, ErrCourseNotFound
		}
		a.logger.Error("查询课程失败", zap.Int64("course_id", courseID), zap.Error(err))
		return nil, policy.Relationship{}, err
	}

	// 授课教师无需加载选课名单
	var studentIDs []int64
	if course.TeacherID != p.UserID {
		studentIDs, err = a.repo.Course.StudentIDs(ctx, courseID)
		if err != nil {
			a.logger.Error("查询选课名单失败", zap.Int64("course_id", courseID), zap.Error(err))
			return nil, policy.Relationship{}, err
		}
	}

	rel := policy.ResolveCourse(p, policy.CourseScope{
		CourseID:   course.ID,
		TeacherID:  course.TeacherID,
		StudentIDs: studentIDs,
	})
	return course, rel, nil
}

// authorizeCourse 加载课程并按 action 判定；拒绝与不存在统一返回 notFound
func (a access) authorizeCourse(ctx context.Context, p policy.Principal, action policy.Action, courseID int64, notFound error) (*model.Course, policy.Relationship, error) {
	course, rel, err := a.course(ctx, p, courseID)
	if err != nil {
		if errors.Is(err, ErrCourseNotFound) {
			return nil, rel, notFound
		}
		return nil, rel, err
	}
	if err := authorize(p, action, rel, notFound); err != nil {
		return nil, rel, err
	}
	return course, rel, nil
}

// notFoundOr 将 gorm.ErrRecordNotFound 转换为模块错误，其余错误记录日志后原样返回
func (a access) notFoundOr(err error, notFound error, msg string, fields ...zap.Field) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	a.logger.Error(msg, append(fields, zap.Error(err))...)
	return err
}

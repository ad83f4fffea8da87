package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/serhatyuna/cengonline-backend/internal/dto"
	"github.com/serhatyuna/cengonline-backend/internal/model"
	"github.com/serhatyuna/cengonline-backend/internal/policy"
	"github.com/serhatyuna/cengonline-backend/internal/repository"
)

// AssignmentService 课程作业业务接口
type AssignmentService interface {
	// ListByCourse 按创建时间倒序返回课程作业
	ListByCourse(ctx context.Context, p policy.Principal, courseID int64) ([]dto.AssignmentResponse, error)
	Get(ctx context.Context, p policy.Principal, courseID, id int64) (*dto.AssignmentResponse, error)
	Create(ctx context.Context, p policy.Principal, courseID int64, req *dto.AssignmentRequest) (*dto.AssignmentResponse, error)
	Update(ctx context.Context, p policy.Principal, id int64, req *dto.AssignmentRequest) (*dto.AssignmentResponse, error)
	Delete(ctx context.Context, p policy.Principal, id int64) error
	// CalendarByCourse 生成课程作业截止时间的 iCalendar 订阅内容
	CalendarByCourse(ctx context.Context, p policy.Principal, courseID int64) ([]byte, error)
}

type assignmentService struct {
	access
	loc *time.Location
}

// NewAssignmentService 创建 AssignmentService 实例
// loc 为截止时间的解析时区，nil 时使用 UTC
func NewAssignmentService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) AssignmentService {
	if loc == nil {
		loc = time.UTC
	}
	return &assignmentService{access: access{repo: repo, logger: logger}, loc: loc}
}

func (s *assignmentService) ListByCourse(ctx context.Context, p policy.Principal, courseID int64) ([]dto.AssignmentResponse, error) {
	if err := gate(p, policy.ActionContentRead); err != nil {
		return nil, err
	}
	if _, _, err := s.authorizeCourse(ctx, p, policy.ActionContentRead, courseID, ErrCourseNotFound); err != nil {
		return nil, err
	}

	list, err := s.repo.Assignment.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("列出作业失败", zap.Int64("course_id", courseID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.AssignmentResponse, 0, len(list))
	for i := range list {
		result = append(result, s.toResponse(&list[i]))
	}
	return result, nil
}

func (s *assignmentService) Get(ctx context.Context, p policy.Principal, courseID, id int64) (*dto.AssignmentResponse, error) {
	if err := gate(p, policy.ActionContentRead); err != nil {
		return nil, err
	}
	if _, _, err := s.authorizeCourse(ctx, p, policy.ActionContentRead, courseID, ErrCourseNotFound); err != nil {
		return nil, err
	}

	a, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		return nil, s.notFoundOr(err, ErrAssignmentNotFound, "查询作业失败", zap.Int64("assignment_id", id))
	}
	if a.CourseID != courseID {
		return nil, ErrAssignmentNotFound
	}

	resp := s.toResponse(a)
	return &resp, nil
}

// ────────────────────── Create ──────────────────────

func (s *assignmentService) Create(ctx context.Context, p policy.Principal, courseID int64, req *dto.AssignmentRequest) (*dto.AssignmentResponse, error) {
	if err := gate(p, policy.ActionContentWrite); err != nil {
		return nil, err
	}
	due, err := s.validate(req)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.authorizeCourse(ctx, p, policy.ActionContentWrite, courseID, ErrCourseNotFound); err != nil {
		return nil, err
	}

	a := &model.Assignment{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
	}
	if err := s.repo.Assignment.Create(ctx, a); err != nil {
		s.logger.Error("创建作业失败", zap.Int64("course_id", courseID), zap.Error(err))
		return nil, err
	}

	resp := s.toResponse(a)
	return &resp, nil
}

// ────────────────────── Update / Delete ──────────────────────

func (s *assignmentService) Update(ctx context.Context, p policy.Principal, id int64, req *dto.AssignmentRequest) (*dto.AssignmentResponse, error) {
	if err := gate(p, policy.ActionContentWrite); err != nil {
		return nil, err
	}
	due, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	a, err := s.load(ctx, p, id)
	if err != nil {
		return nil, err
	}

	a.Title = req.Title
	a.Description = req.Description
	a.DueDate = due
	if err := s.repo.Assignment.Update(ctx, a); err != nil {
		s.logger.Error("更新作业失败", zap.Int64("assignment_id", id), zap.Error(err))
		return nil, err
	}

	resp := s.toResponse(a)
	return &resp, nil
}

func (s *assignmentService) Delete(ctx context.Context, p policy.Principal, id int64) error {
	if err := gate(p, policy.ActionContentWrite); err != nil {
		return err
	}
	if _, err := s.load(ctx, p, id); err != nil {
		return err
	}

	// 提交记录随作业一并删除
	if err := s.repo.Assignment.Delete(ctx, id); err != nil {
		s.logger.Error("删除作业失败", zap.Int64("assignment_id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Calendar ──────────────────────

// CalendarByCourse 每个作业生成一个 VEVENT，开始与结束均为截止时间
func (s *assignmentService) CalendarByCourse(ctx context.Context, p policy.Principal, courseID int64) ([]byte, error) {
	if err := gate(p, policy.ActionContentRead); err != nil {
		return nil, err
	}
	course, _, err := s.authorizeCourse(ctx, p, policy.ActionContentRead, courseID, ErrCourseNotFound)
	if err != nil {
		return nil, err
	}

	list, err := s.repo.Assignment.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("列出作业失败", zap.Int64("course_id", courseID), zap.Error(err))
		return nil, err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//cengonline//assignments//EN")
	cal.SetXWRCalName(fmt.Sprintf("%s (%s)", course.Title, course.Term))

	for i := range list {
		a := &list[i]
		event := cal.AddEvent(fmt.Sprintf("assignment-%d@cengonline", a.ID))
		event.SetCreatedTime(a.CreatedAt)
		event.SetDtStampTime(a.UpdatedAt)
		event.SetStartAt(a.DueDate)
		event.SetEndAt(a.DueDate)
		event.SetSummary(a.Title)
		event.SetDescription(a.Description)
	}

	return []byte(cal.Serialize()), nil
}

// ── 内部辅助方法 ──

func (s *assignmentService) validate(req *dto.AssignmentRequest) (time.Time, error) {
	if err := req.Validate(); err != nil {
		return time.Time{}, invalidInput(err)
	}
	due, err := req.ParseDueDate(s.loc)
	if err != nil {
		return time.Time{}, ErrInvalidDueDate
	}
	return due, nil
}

// load 加载作业并校验调用者是所属课程的授课教师
func (s *assignmentService) load(ctx context.Context, p policy.Principal, id int64) (*model.Assignment, error) {
	a, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		return nil, s.notFoundOr(err, ErrAssignmentNotFound, "查询作业失败", zap.Int64("assignment_id", id))
	}
	if _, _, err := s.authorizeCourse(ctx, p, policy.ActionContentWrite, a.CourseID, ErrAssignmentNotFound); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *assignmentService) toResponse(a *model.Assignment) dto.AssignmentResponse {
	return dto.AssignmentResponse{
		ID:          a.ID,
		CourseID:    a.CourseID,
		Title:       a.Title,
		Description: a.Description,
		DueDate:     a.DueDate.In(s.loc).Format(dto.DueDateLayout),
		CreatedAt:   formatTime(a.CreatedAt),
		UpdatedAt:   formatTime(a.UpdatedAt),
	}
}

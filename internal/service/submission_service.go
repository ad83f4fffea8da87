package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/serhatyuna/cengonline-backend/internal/dto"
	"github.com/serhatyuna/cengonline-backend/internal/model"
	"github.com/serhatyuna/cengonline-backend/internal/policy"
	"github.com/serhatyuna/cengonline-backend/internal/repository"
	"github.com/serhatyuna/cengonline-backend/pkg/mq"
)

// SubmissionService 作业提交业务接口
type SubmissionService interface {
	// GetByID 仅提交者本人可查看
	GetByID(ctx context.Context, p policy.Principal, id int64) (*dto.SubmissionResponse, error)
	// ListByStudent 学生本人或任一教师可查看
	ListByStudent(ctx context.Context, p policy.Principal, studentID int64) ([]dto.SubmissionResponse, error)
	ListByAssignment(ctx context.Context, p policy.Principal, assignmentID int64) ([]dto.SubmissionResponse, error)
	// ListOwned 教师所授全部课程下的提交
	ListOwned(ctx context.Context, p policy.Principal) ([]dto.SubmissionResponse, error)
	Create(ctx context.Context, p policy.Principal, assignmentID int64, req *dto.SubmissionRequest) (*dto.SubmissionResponse, error)
	// ExportByAssignment 导出作业提交为 xlsx，返回文件内容与文件名
	ExportByAssignment(ctx context.Context, p policy.Principal, assignmentID int64) (*bytes.Buffer, string, error)
}

type submissionService struct {
	access
	events mq.Publisher
}

// NewSubmissionService 创建 SubmissionService 实例
func NewSubmissionService(repo *repository.Repository, events mq.Publisher, logger *zap.Logger) SubmissionService {
	return &submissionService{access: access{repo: repo, logger: logger}, events: events}
}

// ────────────────────── 查询 ──────────────────────

func (s *submissionService) GetByID(ctx context.Context, p policy.Principal, id int64) (*dto.SubmissionResponse, error) {
	if err := gate(p, policy.ActionSubmissionRead); err != nil {
		return nil, err
	}

	sub, err := s.repo.Submission.GetByID(ctx, id)
	if err != nil {
		return nil, s.notFoundOr(err, ErrSubmissionNotFound, "查询提交失败", zap.Int64("submission_id", id))
	}

	rel := policy.ResolveParty(p, sub.UserID)
	if err := authorize(p, policy.ActionSubmissionRead, rel, ErrSubmissionForbidden); err != nil {
		return nil, err
	}

	resp := toSubmissionResponse(sub)
	return &resp, nil
}

func (s *submissionService) ListByStudent(ctx context.Context, p policy.Principal, studentID int64) ([]dto.SubmissionResponse, error) {
	if err := gate(p, policy.ActionSubmissionListByStudent); err != nil {
		return nil, err
	}

	rel := policy.ResolveParty(p, studentID)
	if err := authorize(p, policy.ActionSubmissionListByStudent, rel, ErrSubmissionForbidden); err != nil {
		return nil, err
	}

	if _, err := s.repo.User.GetByID(ctx, studentID); err != nil {
		return nil, s.notFoundOr(err, ErrStudentNotFound, "查询学生失败", zap.Int64("student_id", studentID))
	}

	list, err := s.repo.Submission.ListByUser(ctx, studentID)
	if err != nil {
		s.logger.Error("列出学生提交失败", zap.Int64("student_id", studentID), zap.Error(err))
		return nil, err
	}
	return toSubmissionResponses(list), nil
}

func (s *submissionService) ListByAssignment(ctx context.Context, p policy.Principal, assignmentID int64) ([]dto.SubmissionResponse, error) {
	if err := gate(p, policy.ActionSubmissionListByAssignment); err != nil {
		return nil, err
	}
	if _, err := s.assignment(ctx, p, policy.ActionSubmissionListByAssignment, assignmentID); err != nil {
		return nil, err
	}

	list, err := s.repo.Submission.ListByAssignment(ctx, assignmentID)
	if err != nil {
		s.logger.Error("列出作业提交失败", zap.Int64("assignment_id", assignmentID), zap.Error(err))
		return nil, err
	}
	return toSubmissionResponses(list), nil
}

func (s *submissionService) ListOwned(ctx context.Context, p policy.Principal) ([]dto.SubmissionResponse, error) {
	if err := gate(p, policy.ActionSubmissionListOwned); err != nil {
		return nil, err
	}
	if err := authorize(p, policy.ActionSubmissionListOwned, policy.Relationship{}); err != nil {
		return nil, err
	}

	list, err := s.repo.Submission.ListByTeacher(ctx, p.UserID)
	if err != nil {
		s.logger.Error("列出教师课程提交失败", zap.Int64("teacher_id", p.UserID), zap.Error(err))
		return nil, err
	}
	return toSubmissionResponses(list), nil
}

// ────────────────────── Create ──────────────────────

func (s *submissionService) Create(ctx context.Context, p policy.Principal, assignmentID int64, req *dto.SubmissionRequest) (*dto.SubmissionResponse, error) {
	if err := gate(p, policy.ActionSubmissionCreate); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	scope, err := s.assignment(ctx, p, policy.ActionSubmissionCreate, assignmentID)
	if err != nil {
		return nil, err
	}

	// 快速路径：唯一索引 uq_submissions_user_assignment 才是最终保障
	if _, err := s.repo.Submission.GetByUserAndAssignment(ctx, p.UserID, assignmentID); err == nil {
		return nil, ErrAlreadySubmitted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询已有提交失败", zap.Int64("assignment_id", assignmentID), zap.Error(err))
		return nil, err
	}

	sub := &model.Submission{
		AssignmentID: assignmentID,
		UserID:       p.UserID,
		Content:      req.Content,
	}
	if err := s.repo.Submission.Create(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadySubmitted
		}
		s.logger.Error("创建提交失败", zap.Int64("assignment_id", assignmentID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("作业提交成功",
		zap.Int64("submission_id", sub.ID),
		zap.Int64("assignment_id", assignmentID),
		zap.Int64("student_id", p.UserID),
	)

	publish(ctx, s.events, s.logger, mq.RoutingSubmissionCreated, submissionCreatedEvent{
		SubmissionID: sub.ID,
		AssignmentID: assignmentID,
		CourseID:     scope.course.ID,
		StudentID:    p.UserID,
		TeacherID:    scope.course.TeacherID,
	})

	resp := toSubmissionResponse(sub)
	return &resp, nil
}

// ────────────────────── Export ──────────────────────

const exportSheet = "Submissions"

func (s *submissionService) ExportByAssignment(ctx context.Context, p policy.Principal, assignmentID int64) (*bytes.Buffer, string, error) {
	if err := gate(p, policy.ActionSubmissionExport); err != nil {
		return nil, "", err
	}
	scope, err := s.assignment(ctx, p, policy.ActionSubmissionExport, assignmentID)
	if err != nil {
		return nil, "", err
	}

	list, err := s.repo.Submission.ListByAssignment(ctx, assignmentID)
	if err != nil {
		s.logger.Error("列出作业提交失败", zap.Int64("assignment_id", assignmentID), zap.Error(err))
		return nil, "", err
	}

	userIDs := make([]int64, 0, len(list))
	for _, sub := range list {
		userIDs = append(userIDs, sub.UserID)
	}
	users, err := s.repo.User.ListByIDs(ctx, userIDs)
	if err != nil {
		s.logger.Error("批量查询学生失败", zap.Error(err))
		return nil, "", err
	}
	byID := make(map[int64]*model.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	buf, err := buildSubmissionSheet(scope.assignment, list, byID)
	if err != nil {
		s.logger.Error("生成提交导出文件失败", zap.Int64("assignment_id", assignmentID), zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("assignment_%d_submissions.xlsx", assignmentID)
	return buf, filename, nil
}

func buildSubmissionSheet(a *model.Assignment, list []model.Submission, users map[int64]*model.User) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(exportSheet, "A", "A", 10)
	f.SetColWidth(exportSheet, "B", "D", 18)
	f.SetColWidth(exportSheet, "E", "E", 28)
	f.SetColWidth(exportSheet, "F", "F", 60)
	f.SetColWidth(exportSheet, "G", "G", 22)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(exportSheet, "A1", a.Title)
	f.MergeCell(exportSheet, "A1", "G1")

	headers := []string{"提交ID", "学生ID", "姓", "名", "邮箱", "内容", "提交时间"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		f.SetCellValue(exportSheet, cell, h)
	}
	f.SetCellStyle(exportSheet, "A2", "G2", headerStyle)

	for i, sub := range list {
		row := i + 3
		values := []interface{}{sub.ID, sub.UserID, "", "", "", sub.Content, formatTime(sub.CreatedAt)}
		if u, ok := users[sub.UserID]; ok {
			values[2], values[3], values[4] = u.Surname, u.Name, u.Email
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(exportSheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// ── 内部辅助方法 ──

type assignmentScope struct {
	assignment *model.Assignment
	course     *model.Course
}

// assignment 加载作业并按 action 校验调用者与其所属课程的关系
func (s *submissionService) assignment(ctx context.Context, p policy.Principal, action policy.Action, id int64) (assignmentScope, error) {
	a, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		return assignmentScope{}, s.notFoundOr(err, ErrAssignmentNotFound, "查询作业失败", zap.Int64("assignment_id", id))
	}
	course, _, err := s.authorizeCourse(ctx, p, action, a.CourseID, ErrAssignmentNotFound)
	if err != nil {
		return assignmentScope{}, err
	}
	return assignmentScope{assignment: a, course: course}, nil
}

func toSubmissionResponse(sub *model.Submission) dto.SubmissionResponse {
	return dto.SubmissionResponse{
		ID:           sub.ID,
		AssignmentID: sub.AssignmentID,
		UserID:       sub.UserID,
		Content:      sub.Content,
		CreatedAt:    formatTime(sub.CreatedAt),
	}
}

func toSubmissionResponses(list []model.Submission) []dto.SubmissionResponse {
	result := make([]dto.SubmissionResponse, 0, len(list))
	for i := range list {
		result = append(result, toSubmissionResponse(&list[i]))
	}
	return result
}

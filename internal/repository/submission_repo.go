package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/serhatyuna/cengonline-backend/internal/model"
)

// SubmissionRepository 作业提交数据访问接口
type SubmissionRepository interface {
	// Create 写入提交；同一 (user_id, assignment_id) 已存在时返回 ErrDuplicate
	Create(ctx context.Context, s *model.Submission) error
	GetByID(ctx context.Context, id int64) (*model.Submission, error)
	GetByUserAndAssignment(ctx context.Context, userID, assignmentID int64) (*model.Submission, error)
	ListByAssignment(ctx context.Context, assignmentID int64) ([]model.Submission, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Submission, error)
	// ListByTeacher 返回该教师所授全部课程下的提交
	ListByTeacher(ctx context.Context, teacherID int64) ([]model.Submission, error)
}

type submissionRepo struct {
	db *gorm.DB
}

// NewSubmissionRepo 创建 SubmissionRepository 实例
func NewSubmissionRepo(db *gorm.DB) SubmissionRepository {
	return &submissionRepo{db: db}
}

func (r *submissionRepo) Create(ctx context.Context, s *model.Submission) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *submissionRepo) GetByID(ctx context.Context, id int64) (*model.Submission, error) {
	var s model.Submission
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *submissionRepo) GetByUserAndAssignment(ctx context.Context, userID, assignmentID int64) (*model.Submission, error) {
	var s model.Submission
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND assignment_id = ?", userID, assignmentID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *submissionRepo) ListByAssignment(ctx context.Context, assignmentID int64) ([]model.Submission, error) {
	var list []model.Submission
	err := r.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Order(orderOldestFirst).
		Find(&list).Error
	return list, err
}

func (r *submissionRepo) ListByUser(ctx context.Context, userID int64) ([]model.Submission, error) {
	var list []model.Submission
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(orderOldestFirst).
		Find(&list).Error
	return list, err
}

func (r *submissionRepo) ListByTeacher(ctx context.Context, teacherID int64) ([]model.Submission, error) {
	var list []model.Submission
	err := r.db.WithContext(ctx).
		Joins("JOIN assignments a ON a.id = submissions.assignment_id").
		Joins("JOIN courses c ON c.id = a.course_id").
		Where("c.teacher_id = ?", teacherID).
		Order("submissions.created_at ASC, submissions.id ASC").
		Find(&list).Error
	return list, err
}

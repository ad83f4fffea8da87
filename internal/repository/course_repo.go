package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/serhatyuna/cengonline-backend/internal/model"
)

// CourseRepository 课程与选课关系数据访问接口
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id int64) (*model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]model.Course, error)
	ListByStudent(ctx context.Context, studentID int64) ([]model.Course, error)
	Update(ctx context.Context, course *model.Course) error
	// Delete 在同一事务内删除课程及其公告、作业（含提交）、帖子（含评论）与选课关系
	Delete(ctx context.Context, id int64) error

	StudentIDs(ctx context.Context, courseID int64) ([]int64, error)
	// AddStudent 写入选课关系；重复选课返回 ErrDuplicate
	AddStudent(ctx context.Context, courseID, studentID int64) error
}

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) List(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).Order("id ASC").Find(&courses).Error
	return courses, err
}

func (r *courseRepo) ListByTeacher(ctx context.Context, teacherID int64) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("id ASC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) ListByStudent(ctx context.Context, studentID int64) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Joins("JOIN enrollments e ON e.course_id = courses.id").
		Where("e.student_id = ?", studentID).
		Order("courses.id ASC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) Update(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).
		Model(&model.Course{}).
		Where("id = ?", course.ID).
		Updates(map[string]interface{}{
			"title":      course.Title,
			"term":       course.Term,
			"updated_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *courseRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assignments := tx.Model(&model.Assignment{}).Select("id").Where("course_id = ?", id)
		if err := tx.Where("assignment_id IN (?)", assignments).Delete(&model.Submission{}).Error; err != nil {
			return err
		}
		posts := tx.Model(&model.Post{}).Select("id").Where("course_id = ?", id)
		if err := tx.Where("post_id IN (?)", posts).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		for _, child := range []interface{}{&model.Assignment{}, &model.Post{}, &model.Announcement{}, &model.Enrollment{}} {
			if err := tx.Where("course_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).Delete(&model.Course{}).Error
	})
}

func (r *courseRepo) StudentIDs(ctx context.Context, courseID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("course_id = ?", courseID).
		Order("student_id ASC").
		Pluck("student_id", &ids).Error
	return ids, err
}

func (r *courseRepo) AddStudent(ctx context.Context, courseID, studentID int64) error {
	return translate(r.db.WithContext(ctx).Create(&model.Enrollment{
		CourseID:  courseID,
		StudentID: studentID,
	}).Error)
}

package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User         UserRepository
	Course       CourseRepository
	Announcement AnnouncementRepository
	Assignment   AssignmentRepository
	Submission   SubmissionRepository
	Post         PostRepository
	Comment      CommentRepository
	Message      MessageRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:         NewUserRepo(db),
		Course:       NewCourseRepo(db),
		Announcement: NewAnnouncementRepo(db),
		Assignment:   NewAssignmentRepo(db),
		Submission:   NewSubmissionRepo(db),
		Post:         NewPostRepo(db),
		Comment:      NewCommentRepo(db),
		Message:      NewMessageRepo(db),
	}
}

// 列表排序：创建时间为主键，ID 为同向次键，保证全序
const (
	orderNewestFirst = "created_at DESC, id DESC"
	orderOldestFirst = "created_at ASC, id ASC"
)

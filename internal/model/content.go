package model

import "time"

// Announcement 公告表 — 对应 announcements
type Announcement struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseID    int64  `gorm:"not null;index"           json:"course_id"`
	Description string `gorm:"type:text;not null"       json:"description"`
	BaseModel
}

// TableName 指定表名
func (Announcement) TableName() string { return "announcements" }

// Assignment 作业表 — 对应 assignments
type Assignment struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"   json:"id"`
	CourseID    int64     `gorm:"not null;index"             json:"course_id"`
	Title       string    `gorm:"type:varchar(100);not null" json:"title"`
	Description string    `gorm:"type:text;not null"         json:"description"`
	DueDate     time.Time `gorm:"not null"                   json:"due_date"`
	BaseModel
}

// TableName 指定表名
func (Assignment) TableName() string { return "assignments" }

// Submission 作业提交表 — 对应 submissions
// 每个 (user_id, assignment_id) 至多一条，创建后不可修改
type Submission struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"                          json:"id"`
	AssignmentID int64  `gorm:"not null;uniqueIndex:uq_submissions_user_assignment,priority:2" json:"assignment_id"`
	UserID       int64  `gorm:"not null;uniqueIndex:uq_submissions_user_assignment,priority:1" json:"user_id"`
	Content      string `gorm:"type:text;not null"                                json:"content"`
	BaseModel
}

// TableName 指定表名
func (Submission) TableName() string { return "submissions" }

// Post 课程讨论帖表 — 对应 posts
type Post struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	CourseID int64  `gorm:"not null;index"           json:"course_id"`
	Body     string `gorm:"type:text;not null"       json:"body"`
	BaseModel
}

// TableName 指定表名
func (Post) TableName() string { return "posts" }

// Comment 帖子评论表 — 对应 comments
type Comment struct {
	ID     int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID int64  `gorm:"not null;index"           json:"post_id"`
	UserID int64  `gorm:"not null;index"           json:"user_id"`
	Body   string `gorm:"type:text;not null"       json:"body"`
	BaseModel
}

// TableName 指定表名
func (Comment) TableName() string { return "comments" }

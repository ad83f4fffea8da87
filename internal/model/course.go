package model

// Course 课程表 — 对应 courses
// TeacherID 创建后不可变更
type Course struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"   json:"id"`
	Title     string `gorm:"type:varchar(100);not null" json:"title"`
	Term      string `gorm:"type:varchar(100);not null" json:"term"`
	TeacherID int64  `gorm:"not null;index"             json:"teacher_id"`
	BaseModel
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// Enrollment 选课关系表 — 对应 enrollments
// (course_id, student_id) 为联合主键，由存储层保证唯一
type Enrollment struct {
	CourseID  int64 `gorm:"primaryKey;autoIncrement:false" json:"course_id"`
	StudentID int64 `gorm:"primaryKey;autoIncrement:false" json:"student_id"`
	BaseModel
}

// TableName 指定表名
func (Enrollment) TableName() string { return "enrollments" }

package model

// User 用户表 — 对应 users
// 当前数据中每个用户恰好持有一个角色（teacher 或 student）
type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"            json:"id"`
	Name         string `gorm:"type:varchar(50);not null"           json:"name"`
	Surname      string `gorm:"type:varchar(50);not null"           json:"surname"`
	Email        string `gorm:"type:varchar(100);not null;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"          json:"-"`
	Role         string `gorm:"type:varchar(20);not null"           json:"role"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

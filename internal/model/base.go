package model

import "time"

// BaseModel 通用时间戳字段（所有业务模型嵌入）
// 列表排序以 CreatedAt 为主键、ID 为次键
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"       json:"updated_at"`
}

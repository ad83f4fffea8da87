package model

// Message 私信表 — 对应 messages
// 发送方与接收方不得相同（库表 CHECK 约束兜底）
type Message struct {
	ID         int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID   int64  `gorm:"not null;index"           json:"sender_id"`
	ReceiverID int64  `gorm:"not null;index"           json:"receiver_id"`
	Content    string `gorm:"type:text;not null"       json:"content"`
	BaseModel
}

// TableName 指定表名
func (Message) TableName() string { return "messages" }

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/serhatyuna/cengonline-backend/internal/model"
)

// MessageRepository 私信数据访问接口
type MessageRepository interface {
	Create(ctx context.Context, m *model.Message) error
	// ListConversation 返回两人之间双向的全部私信，按创建时间正序
	ListConversation(ctx context.Context, userA, userB int64) ([]model.Message, error)
}

type messageRepo struct {
	db *gorm.DB
}

// NewMessageRepo 创建 MessageRepository 实例
func NewMessageRepo(db *gorm.DB) MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) Create(ctx context.Context, m *model.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *messageRepo) ListConversation(ctx context.Context, userA, userB int64) ([]model.Message, error) {
	var list []model.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", userA, userB, userB, userA).
		Order(orderOldestFirst).
		Find(&list).Error
	return list, err
}

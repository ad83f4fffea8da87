package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicate 唯一约束冲突（邮箱、选课、作业提交）
// 应用层的存在性预检只是快速路径，最终以库表唯一约束为准
var ErrDuplicate = errors.New("记录已存在")

// isDuplicate 判断是否为唯一约束冲突（SQLSTATE 23505）
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// translate 将唯一约束冲突转换为 ErrDuplicate，其余错误原样返回
func translate(err error) error {
	if err == nil {
		return nil
	}
	if isDuplicate(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

package service

import (
	pkgerrors "github.com/serhatyuna/cengonline-backend/pkg/errors"
)

// ── 通用业务错误 ──

// invalidInput 入参校验失败，在任何存储访问之前返回
func invalidInput(err error) error {
	return pkgerrors.New(pkgerrors.KindBadRequest, 10001, "参数校验失败: "+err.Error())
}

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = pkgerrors.New(pkgerrors.KindUnauthorized, 11001, "邮箱或密码错误")
	ErrEmailInUse         = pkgerrors.New(pkgerrors.KindBadRequest, 11002, "邮箱已被使用")
	ErrEmailConflict      = pkgerrors.New(pkgerrors.KindConflict, 11003, "邮箱已被并发注册")
	ErrLogoutUnavailable  = pkgerrors.New(pkgerrors.KindInternal, 11004, "Token 黑名单不可用")
)

// ── 用户模块业务错误 ──

var (
	ErrNoUserYet    = pkgerrors.New(pkgerrors.KindNotFound, 12001, "暂无用户")
	ErrUserNotFound = pkgerrors.New(pkgerrors.KindNotFound, 12002, "用户不存在")
)

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound  = pkgerrors.New(pkgerrors.KindNotFound, 13001, "课程不存在")
	ErrAlreadyEnrolled = pkgerrors.New(pkgerrors.KindBadRequest, 13002, "已选修该课程")
	ErrEnrollConflict  = pkgerrors.New(pkgerrors.KindConflict, 13003, "选课请求冲突")
	ErrTeacherNotFound = pkgerrors.New(pkgerrors.KindBadRequest, 13004, "当前教师账号不存在")
)

// ── 公告模块业务错误 ──

var (
	ErrAnnouncementNotFound = pkgerrors.New(pkgerrors.KindNotFound, 14001, "公告不存在")
)

// ── 作业模块业务错误 ──

var (
	ErrAssignmentNotFound = pkgerrors.New(pkgerrors.KindNotFound, 15001, "作业不存在")
	ErrInvalidDueDate     = pkgerrors.New(pkgerrors.KindBadRequest, 15002, "截止时间格式应为 dd.MM.yyyy HH:mm")
)

// ── 作业提交模块业务错误 ──

var (
	ErrSubmissionNotFound  = pkgerrors.New(pkgerrors.KindNotFound, 16001, "提交不存在")
	ErrSubmissionForbidden = pkgerrors.New(pkgerrors.KindForbidden, 16002, "无权查看该提交")
	ErrAlreadySubmitted    = pkgerrors.New(pkgerrors.KindConflict, 16003, "已提交过该作业")
	ErrStudentNotFound     = pkgerrors.New(pkgerrors.KindNotFound, 16004, "学生不存在")
)

// ── 讨论帖模块业务错误 ──

var (
	ErrPostNotFound    = pkgerrors.New(pkgerrors.KindNotFound, 17001, "帖子不存在")
	ErrCommentNotFound = pkgerrors.New(pkgerrors.KindNotFound, 17002, "评论不存在")
)

// ── 私信模块业务错误 ──

var (
	ErrReceiverNotFound = pkgerrors.New(pkgerrors.KindBadRequest, 18001, "接收者不存在")
	ErrMessageToSelf    = pkgerrors.New(pkgerrors.KindBadRequest, 18002, "不能给自己发送私信")
)

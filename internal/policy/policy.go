package policy

import (
	"fmt"

	pkgerrors "github.com/serhatyuna/cengonline-backend/pkg/errors"
)

// Action 受控操作
type Action string

const (
	ActionCourseList   Action = "course.list"
	ActionCourseRead   Action = "course.read"
	ActionCourseCreate Action = "course.create"
	ActionCourseUpdate Action = "course.update"
	ActionCourseDelete Action = "course.delete"
	ActionCourseEnroll Action = "course.enroll"

	// 课程子资源（公告、作业、帖子）的读写共用一组规则
	ActionContentRead  Action = "content.read"
	ActionContentWrite Action = "content.write"

	ActionSubmissionRead             Action = "submission.read"
	ActionSubmissionListByStudent    Action = "submission.list_by_student"
	ActionSubmissionListByAssignment Action = "submission.list_by_assignment"
	ActionSubmissionListOwned        Action = "submission.list_owned"
	ActionSubmissionExport           Action = "submission.export"
	ActionSubmissionCreate           Action = "submission.create"

	ActionCommentList   Action = "comment.list"
	ActionCommentCreate Action = "comment.create"
	ActionCommentDelete Action = "comment.delete"

	ActionMessageSend Action = "message.send"
	ActionMessageRead Action = "message.read"

	ActionUserList Action = "user.list"
	ActionUserRead Action = "user.read"
)

// requirement 关系判定函数，返回 true 表示放行
type requirement func(p Principal, rel Relationship) bool

// rule 单条策略：允许尝试的角色集合 + 关系要求 + 拒绝时的错误分类
type rule struct {
	roles   []Role
	require requirement
	failure pkgerrors.Kind
}

var (
	anyRole     = []Role{RoleTeacher, RoleStudent}
	teacherOnly = []Role{RoleTeacher}
	studentOnly = []Role{RoleStudent}
)

func always(Principal, Relationship) bool { return true }

func ownerOrEnrolled(_ Principal, rel Relationship) bool { return rel.Owner || rel.Enrolled }

func owner(_ Principal, rel Relationship) bool { return rel.Owner }

func enrolled(_ Principal, rel Relationship) bool { return rel.Enrolled }

func self(_ Principal, rel Relationship) bool { return rel.Self }

func selfOrOwner(_ Principal, rel Relationship) bool { return rel.Self || rel.Owner }

func selfOrTeacher(p Principal, rel Relationship) bool { return rel.Self || p.IsTeacher() }

func notSelf(_ Principal, rel Relationship) bool { return !rel.Self }

func notMember(_ Principal, rel Relationship) bool { return !rel.Owner && !rel.Enrolled }

// rules 策略表：所有资源服务共用的唯一判定来源
//
// 与课程相关但无权访问的情形统一返回 NotFound，不暴露资源是否存在；
// 提交详情与学生提交列表允许暴露存在性，返回 Forbidden。
var rules = map[Action]rule{
	ActionCourseList:   {roles: anyRole, require: always, failure: pkgerrors.KindForbidden},
	ActionCourseRead:   {roles: anyRole, require: ownerOrEnrolled, failure: pkgerrors.KindNotFound},
	ActionCourseCreate: {roles: teacherOnly, require: always, failure: pkgerrors.KindBadRequest},
	ActionCourseUpdate: {roles: teacherOnly, require: owner, failure: pkgerrors.KindNotFound},
	ActionCourseDelete: {roles: teacherOnly, require: owner, failure: pkgerrors.KindNotFound},
	ActionCourseEnroll: {roles: studentOnly, require: notMember, failure: pkgerrors.KindBadRequest},

	ActionContentRead:  {roles: anyRole, require: ownerOrEnrolled, failure: pkgerrors.KindNotFound},
	ActionContentWrite: {roles: teacherOnly, require: owner, failure: pkgerrors.KindNotFound},

	ActionSubmissionRead:             {roles: anyRole, require: self, failure: pkgerrors.KindForbidden},
	ActionSubmissionListByStudent:    {roles: anyRole, require: selfOrTeacher, failure: pkgerrors.KindForbidden},
	ActionSubmissionListByAssignment: {roles: teacherOnly, require: owner, failure: pkgerrors.KindNotFound},
	ActionSubmissionListOwned:        {roles: teacherOnly, require: always, failure: pkgerrors.KindForbidden},
	ActionSubmissionExport:           {roles: teacherOnly, require: owner, failure: pkgerrors.KindNotFound},
	ActionSubmissionCreate:           {roles: studentOnly, require: enrolled, failure: pkgerrors.KindNotFound},

	ActionCommentList:   {roles: anyRole, require: ownerOrEnrolled, failure: pkgerrors.KindNotFound},
	ActionCommentCreate: {roles: anyRole, require: ownerOrEnrolled, failure: pkgerrors.KindNotFound},
	ActionCommentDelete: {roles: anyRole, require: selfOrOwner, failure: pkgerrors.KindNotFound},

	ActionMessageSend: {roles: anyRole, require: notSelf, failure: pkgerrors.KindBadRequest},
	ActionMessageRead: {roles: anyRole, require: always, failure: pkgerrors.KindBadRequest},

	ActionUserList: {roles: anyRole, require: always, failure: pkgerrors.KindForbidden},
	ActionUserRead: {roles: anyRole, require: always, failure: pkgerrors.KindForbidden},
}

// Decision 策略判定结果
type Decision struct {
	Allowed bool
	Kind    pkgerrors.Kind
	Reason  string
}

// Err 将拒绝判定转换为通用业务错误；放行时返回 nil
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	switch d.Kind {
	case pkgerrors.KindNotFound:
		return pkgerrors.New(d.Kind, 40400, "资源不存在")
	case pkgerrors.KindBadRequest:
		return pkgerrors.New(d.Kind, 40000, "请求不满足前置条件")
	default:
		return pkgerrors.New(pkgerrors.KindForbidden, 40300, "无权执行该操作")
	}
}

// RoleAllowed 粗粒度角色闸门：角色是否有资格尝试该操作
// 在加载任何实体之前调用；未登记的操作一律拒绝
func RoleAllowed(role Role, action Action) bool {
	r, ok := rules[action]
	if !ok {
		return false
	}
	for _, allowed := range r.roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Authorize 中央判定函数
// 先过角色闸门（失败为 Forbidden），再按策略表校验关系（失败为该操作登记的错误分类）
func Authorize(p Principal, action Action, rel Relationship) Decision {
	r, ok := rules[action]
	if !ok {
		return Decision{Kind: pkgerrors.KindForbidden, Reason: fmt.Sprintf("未登记的操作 %q", action)}
	}
	if !RoleAllowed(p.Role, action) {
		return Decision{Kind: pkgerrors.KindForbidden, Reason: fmt.Sprintf("角色 %q 不允许执行 %q", p.Role, action)}
	}
	if !r.require(p, rel) {
		return Decision{Kind: r.failure, Reason: fmt.Sprintf("关系不满足 %q 的要求", action)}
	}
	return Decision{Allowed: true}
}

// Actions 返回策略表中登记的全部操作
func Actions() []Action {
	out := make([]Action, 0, len(rules))
	for a := range rules {
		out = append(out, a)
	}
	return out
}

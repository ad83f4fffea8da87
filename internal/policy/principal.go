package policy

// Role 用户角色
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// ParseRole 将字符串解析为角色，未知角色返回 false
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleTeacher:
		return RoleTeacher, true
	case RoleStudent:
		return RoleStudent, true
	default:
		return "", false
	}
}

// Principal 当前请求的认证主体
// 由调用方显式传入，策略包内不读取任何请求上下文
type Principal struct {
	UserID int64
	Role   Role
}

// IsTeacher 是否为教师
func (p Principal) IsTeacher() bool { return p.Role == RoleTeacher }

// IsStudent 是否为学生
func (p Principal) IsStudent() bool { return p.Role == RoleStudent }

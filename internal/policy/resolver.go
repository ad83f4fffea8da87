package policy

// Relationship 主体与资源之间的关系
//
//   - Owner:    主体是资源所属课程的授课教师
//   - Enrolled: 主体已选修资源所属课程
//   - Self:     主体是资源的直接当事人（提交作者、私信收发方、目标用户、评论作者）
type Relationship struct {
	Owner    bool
	Enrolled bool
	Self     bool
}

// Unrelated 主体与资源无任何关系
func (r Relationship) Unrelated() bool {
	return !r.Owner && !r.Enrolled && !r.Self
}

// Merge 合并两个关系（逐字段取或）
func (r Relationship) Merge(o Relationship) Relationship {
	return Relationship{
		Owner:    r.Owner || o.Owner,
		Enrolled: r.Enrolled || o.Enrolled,
		Self:     r.Self || o.Self,
	}
}

// CourseScope 解析课程关系所需的已加载数据
// 公告、作业、帖子、提交等子资源先沿外键回溯到所属课程，再构造 CourseScope
type CourseScope struct {
	CourseID   int64
	TeacherID  int64
	StudentIDs []int64
}

// ResolveCourse 计算主体与课程的关系
//
// 选课判定对 StudentIDs 做线性扫描，复杂度 O(n)，n 为课程选课人数。
// 纯函数，无副作用。
func ResolveCourse(p Principal, scope CourseScope) Relationship {
	rel := Relationship{Owner: scope.TeacherID == p.UserID}
	for _, id := range scope.StudentIDs {
		if id == p.UserID {
			rel.Enrolled = true
			break
		}
	}
	return rel
}

// ResolveParty 计算主体与直接当事人的关系
// 主体是任一当事人时 Self 成立
func ResolveParty(p Principal, partyIDs ...int64) Relationship {
	for _, id := range partyIDs {
		if id == p.UserID {
			return Relationship{Self: true}
		}
	}
	return Relationship{}
}

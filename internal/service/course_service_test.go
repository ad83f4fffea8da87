package service

import (
	"context"
	"testing"

	"github.com/serhatyuna/cengonline-backend/internal/dto"
	"github.com/serhatyuna/cengonline-backend/internal/model"
	"github.com/serhatyuna/cengonline-backend/internal/policy"
	pkgerrors "github.com/serhatyuna/cengonline-backend/pkg/errors"
)

// 课程详情仅对授课教师与选课学生可见，其余一律 NotFound
func TestCourseService_GetByID_Visibility(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		p       policy.Principal
		visible bool
	}{
		{"授课教师", f.teacher, true},
		{"选课学生", f.student, true},
		{"未选课学生", f.outsider, false},
		{"其他教师", f.otherTeacher, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := f.svc.Course.GetByID(context.Background(), tt.p, f.course.ID)
			if tt.visible {
				if err != nil {
					t.Fatalf("应可见: %v", err)
				}
				if c.Title != "Algorithms" {
					t.Errorf("课程标题不符: %s", c.Title)
				}
				return
			}
			assertIs(t, err, ErrCourseNotFound)
		})
	}

	_, err := f.svc.Course.GetByID(context.Background(), f.teacher, 9999)
	assertIs(t, err, ErrCourseNotFound)
}

func TestCourseService_ListMine(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mine, err := f.svc.Course.ListMine(ctx, f.teacher)
	if err != nil || len(mine) != 1 {
		t.Fatalf("教师应有 1 门课程: %v %v", mine, err)
	}
	enrolled, err := f.svc.Course.ListMine(ctx, f.student)
	if err != nil || len(enrolled) != 1 {
		t.Fatalf("学生应有 1 门已选课程: %v %v", enrolled, err)
	}
	none, err := f.svc.Course.ListMine(ctx, f.outsider)
	if err != nil || len(none) != 0 {
		t.Fatalf("未选课学生应无课程: %v %v", none, err)
	}

	all, err := f.svc.Course.List(ctx, f.outsider)
	if err != nil || len(all) != 1 {
		t.Fatalf("课程目录应包含全部课程: %v %v", all, err)
	}
}

// ── Create 测试 ──

func TestCourseService_Create(t *testing.T) {
	f := newFixture(t)

	c, err := f.svc.Course.Create(context.Background(), f.otherTeacher, &dto.CourseRequest{Title: " Compilers ", Term: "2026 Fall"})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if c.Title != "Compilers" || c.TeacherID != f.otherTeacher.UserID {
		t.Errorf("课程不符: %+v", c)
	}
}

func TestCourseService_Create_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	before := len(f.store.courses)

	_, err := f.svc.Course.Create(ctx, f.student, &dto.CourseRequest{Title: "Hack", Term: "2026"})
	assertKind(t, err, pkgerrors.KindForbidden)

	_, err = f.svc.Course.Create(ctx, f.teacher, &dto.CourseRequest{Title: "   ", Term: "2026"})
	assertKind(t, err, pkgerrors.KindBadRequest)

	ghost := policy.Principal{UserID: 777, Role: policy.RoleTeacher}
	_, err = f.svc.Course.Create(ctx, ghost, &dto.CourseRequest{Title: "Ghost", Term: "2026"})
	assertIs(t, err, ErrTeacherNotFound)

	if len(f.store.courses) != before {
		t.Error("被拒绝的请求不应写入课程")
	}
}

// ── Update / Delete 测试 ──

func TestCourseService_Update_OwnerOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := &dto.CourseRequest{Title: "Advanced Algorithms", Term: "2026 Spring"}

	_, err := f.svc.Course.Update(ctx, f.otherTeacher, f.course.ID, req)
	assertIs(t, err, ErrCourseNotFound)

	c, err := f.svc.Course.Update(ctx, f.teacher, f.course.ID, req)
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if c.Title != "Advanced Algorithms" || c.TeacherID != f.teacher.UserID {
		t.Errorf("更新结果不符: %+v", c)
	}
}

func TestCourseService_Delete_Cascade(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := f.store.repository()

	ann := &model.Announcement{CourseID: f.course.ID, Description: "Welcome"}
	asg := &model.Assignment{CourseID: f.course.ID, Title: "HW1", Description: "Sort"}
	post := &model.Post{CourseID: f.course.ID, Body: "Q&A"}
	_ = repo.Announcement.Create(ctx, ann)
	_ = repo.Assignment.Create(ctx, asg)
	_ = repo.Post.Create(ctx, post)
	_ = repo.Submission.Create(ctx, &model.Submission{AssignmentID: asg.ID, UserID: f.student.UserID, Content: "v1"})
	_ = repo.Comment.Create(ctx, &model.Comment{PostID: post.ID, UserID: f.student.UserID, Body: "hi"})

	err := f.svc.Course.Delete(ctx, f.student, f.course.ID)
	assertKind(t, err, pkgerrors.KindForbidden)

	if err := f.svc.Course.Delete(ctx, f.teacher, f.course.ID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}

	counts := map[string]int{
		"课程":   len(f.store.courses),
		"公告":   len(f.store.announcements),
		"作业":   len(f.store.assignments),
		"提交":   len(f.store.submissions),
		"帖子":   len(f.store.posts),
		"评论":   len(f.store.comments),
		"选课关系": len(f.store.enrollments),
	}
	for name, n := range counts {
		if n != 0 {
			t.Errorf("%s 应被级联删除，剩余 %d", name, n)
		}
	}
}

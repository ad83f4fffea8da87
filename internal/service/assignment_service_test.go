package service

import (
	"context"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/serhatyuna/cengonline-backend/internal/dto"
	pkgerrors "github.com/serhatyuna/cengonline-backend/pkg/errors"
)

func assignmentRequest(title, due string) *dto.AssignmentRequest {
	return &dto.AssignmentRequest{Title: title, Description: "Implement " + title, DueDate: due}
}

func TestAssignmentService_CreateAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.svc.Assignment.Create(ctx, f.teacher, f.course.ID, assignmentRequest("Dijkstra", "15.03.2026 23:59"))
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if a.DueDate != "15.03.2026 23:59" {
		t.Errorf("截止时间应按 dd.MM.yyyy HH:mm 回显，实际 %s", a.DueDate)
	}

	got, err := f.svc.Assignment.Get(ctx, f.student, f.course.ID, a.ID)
	if err != nil || got.Title != "Dijkstra" {
		t.Fatalf("选课学生应能查看作业: %+v %v", got, err)
	}
	stored := f.store.assignments[a.ID].DueDate
	if !stored.Equal(time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC)) {
		t.Errorf("存储的截止时间不符: %s", stored)
	}

	_, err = f.svc.Assignment.Get(ctx, f.outsider, f.course.ID, a.ID)
	assertKind(t, err, pkgerrors.KindNotFound)
}

func TestAssignmentService_InvalidDueDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Assignment.Create(context.Background(), f.teacher, f.course.ID, assignmentRequest("HW", "2026-03-15"))
	assertKind(t, err, pkgerrors.KindBadRequest)
	if len(f.store.assignments) != 0 {
		t.Error("非法截止时间不应写入作业")
	}
}

func TestAssignmentService_UpdateDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, _ := f.svc.Assignment.Create(ctx, f.teacher, f.course.ID, assignmentRequest("HW1", "01.04.2026 12:00"))

	_, err := f.svc.Assignment.Update(ctx, f.student, a.ID, assignmentRequest("HW1b", "02.04.2026 12:00"))
	assertKind(t, err, pkgerrors.KindForbidden)
	_, err = f.svc.Assignment.Update(ctx, f.otherTeacher, a.ID, assignmentRequest("HW1b", "02.04.2026 12:00"))
	assertIs(t, err, ErrAssignmentNotFound)

	updated, err := f.svc.Assignment.Update(ctx, f.teacher, a.ID, assignmentRequest("HW1b", "02.04.2026 12:00"))
	if err != nil || updated.Title != "HW1b" || updated.DueDate != "02.04.2026 12:00" {
		t.Fatalf("Update 结果不符: %+v %v", updated, err)
	}

	if _, err := f.svc.Submission.Create(ctx, f.student, a.ID, &dto.SubmissionRequest{Content: "done"}); err != nil {
		t.Fatalf("提交应成功: %v", err)
	}
	if err := f.svc.Assignment.Delete(ctx, f.teacher, a.ID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if len(f.store.submissions) != 0 {
		t.Error("删除作业应同时删除提交")
	}
}

func TestAssignmentService_Calendar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, _ = f.svc.Assignment.Create(ctx, f.teacher, f.course.ID, assignmentRequest("HW1", "01.04.2026 12:00"))
	_, _ = f.svc.Assignment.Create(ctx, f.teacher, f.course.ID, assignmentRequest("HW2", "15.04.2026 12:00"))

	body, err := f.svc.Assignment.CalendarByCourse(ctx, f.student, f.course.ID)
	if err != nil {
		t.Fatalf("CalendarByCourse 应成功: %v", err)
	}

	cal, err := ics.ParseCalendar(strings.NewReader(string(body)))
	if err != nil {
		t.Fatalf("生成的日历应可解析: %v", err)
	}
	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("期望 2 个事件，实际 %d", len(events))
	}
	summaries := map[string]bool{}
	for _, e := range events {
		summaries[e.GetProperty(ics.ComponentPropertySummary).Value] = true
	}
	if !summaries["HW1"] || !summaries["HW2"] {
		t.Errorf("事件标题不符: %v", summaries)
	}

	_, err = f.svc.Assignment.CalendarByCourse(ctx, f.outsider, f.course.ID)
	assertKind(t, err, pkgerrors.KindNotFound)
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/serhatyuna/cengonline-backend/config"
	"github.com/serhatyuna/cengonline-backend/internal/model"
	"github.com/serhatyuna/cengonline-backend/internal/policy"
	pkgerrors "github.com/serhatyuna/cengonline-backend/pkg/errors"
	"github.com/serhatyuna/cengonline-backend/pkg/jwt"
)

// ── 测试夹具 ──
// teacher 授课 course；student 已选修；outsider 为未选课学生；otherTeacher 不授该课

type fixture struct {
	store     *memStore
	svc       *Service
	events    *recordingPublisher
	blacklist *memBlacklist
	authCfg   config.AuthConfig

	teacher      policy.Principal
	otherTeacher policy.Principal
	student      policy.Principal
	outsider     policy.Principal
	course       *model.Course
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := newMemStore()
	events := &recordingPublisher{}
	blacklist := &memBlacklist{}

	cfg := &config.Config{
		Database: config.DatabaseConfig{Timezone: "UTC"},
		Auth:     config.AuthConfig{JWTSecret: "test-secret-0123456789", AccessTokenTTL: time.Hour},
	}
	svc := NewService(cfg, store.repository(), jwt.NewManager(&cfg.Auth), blacklist, events, zap.NewNop())
	svc.Auth.(*authService).hashCost = bcrypt.MinCost

	f := &fixture{store: store, svc: svc, events: events, blacklist: blacklist, authCfg: cfg.Auth}
	f.teacher = f.seedUser(t, "Alan", "Turing", "teacher")
	f.otherTeacher = f.seedUser(t, "Grace", "Hopper", "teacher")
	f.student = f.seedUser(t, "Ada", "Lovelace", "student")
	f.outsider = f.seedUser(t, "Edsger", "Dijkstra", "student")

	f.course = &model.Course{Title: "Algorithms", Term: "2026 Spring", TeacherID: f.teacher.UserID}
	if err := store.repository().Course.Create(context.Background(), f.course); err != nil {
		t.Fatalf("创建课程失败: %v", err)
	}
	f.enroll(t, f.course.ID, f.student)
	return f
}

func (f *fixture) seedUser(t *testing.T, name, surname, role string) policy.Principal {
	t.Helper()
	u := &model.User{
		Name:         name,
		Surname:      surname,
		Email:        name + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	if err := f.store.repository().User.Create(context.Background(), u); err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	r, _ := policy.ParseRole(role)
	return policy.Principal{UserID: u.ID, Role: r}
}

func (f *fixture) enroll(t *testing.T, courseID int64, p policy.Principal) {
	t.Helper()
	if err := f.store.repository().Course.AddStudent(context.Background(), courseID, p.UserID); err != nil {
		t.Fatalf("选课失败: %v", err)
	}
}

// assertKind 断言错误属于指定分类
func assertKind(t *testing.T, err error, want pkgerrors.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("期望 %s 错误，实际为 nil", want)
	}
	if got := pkgerrors.KindOf(err); got != want {
		t.Fatalf("期望 %s 错误，实际 %s: %v", want, got, err)
	}
}

// assertIs 断言错误为指定哨兵错误
func assertIs(t *testing.T, err, want error) {
	t.Helper()
	if !errors.Is(err, want) {
		t.Fatalf("期望 %v，实际 %v", want, err)
	}
}

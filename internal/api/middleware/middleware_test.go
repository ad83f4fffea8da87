package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/serhatyuna/cengonline-backend/config"
	"github.com/serhatyuna/cengonline-backend/internal/policy"
	"github.com/serhatyuna/cengonline-backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newJWTManager() *jwt.Manager {
	return jwt.NewManager(&config.AuthConfig{
		JWTSecret:      "middleware-test-secret-0123",
		AccessTokenTTL: time.Hour,
	})
}

func ok(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id": c.GetInt64("user_id"),
		"role":    c.GetString("role"),
	})
}

func TestJWTAuth(t *testing.T) {
	mgr := newJWTManager()
	token, err := mgr.GenerateAccessToken(7, "teacher")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	r := gin.New()
	r.GET("/me", JWTAuth(mgr, nil), ok)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"合法 Token", "Bearer " + token, http.StatusOK},
		{"缺少认证头", "", http.StatusUnauthorized},
		{"错误前缀", "Token " + token, http.StatusUnauthorized},
		{"伪造 Token", "Bearer not.a.token", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("期望 %d，实际 %d", tt.want, w.Code)
			}
		})
	}
}

func TestJWTAuth_InjectsPrincipal(t *testing.T) {
	mgr := newJWTManager()
	token, _ := mgr.GenerateAccessToken(7, "teacher")

	var gotID int64
	var gotRole, gotJTI string
	var gotExp time.Time
	r := gin.New()
	r.GET("/me", JWTAuth(mgr, nil), func(c *gin.Context) {
		gotID = c.GetInt64("user_id")
		gotRole = c.GetString("role")
		gotJTI = c.GetString("token_jti")
		gotExp = c.GetTime("token_exp")
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if gotID != 7 || gotRole != "teacher" {
		t.Errorf("主体注入错误: id=%d role=%s", gotID, gotRole)
	}
	if gotJTI == "" {
		t.Error("缺少 token_jti")
	}
	if gotExp.Before(time.Now()) {
		t.Errorf("token_exp 应在未来: %s", gotExp)
	}
}

func TestActionGate(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		action policy.Action
		want   int
	}{
		{"学生不能创建课程", "student", policy.ActionCourseCreate, http.StatusForbidden},
		{"教师可以创建课程", "teacher", policy.ActionCourseCreate, http.StatusOK},
		{"教师不能选课", "teacher", policy.ActionCourseEnroll, http.StatusForbidden},
		{"学生可以提交作业", "student", policy.ActionSubmissionCreate, http.StatusOK},
		{"学生不能导出提交", "student", policy.ActionSubmissionExport, http.StatusForbidden},
		{"未知角色", "admin", policy.ActionCourseList, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/x", func(c *gin.Context) {
				c.Set("user_id", int64(1))
				c.Set("role", tt.role)
				c.Next()
			}, ActionGate(tt.action), ok)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

			if w.Code != tt.want {
				t.Errorf("期望 %d，实际 %d", tt.want, w.Code)
			}
		})
	}
}

func TestActionGate_Unauthenticated(t *testing.T) {
	r := gin.New()
	r.GET("/x", ActionGate(policy.ActionCourseList), ok)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("期望 401，实际 %d", w.Code)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(requestIDKey)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	generated := w.Header().Get(requestIDHeader)
	if generated == "" || w.Body.String() != generated {
		t.Errorf("应生成请求 ID 并写入上下文: header=%q body=%q", generated, w.Body.String())
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(requestIDHeader, "trace-123")
	r.ServeHTTP(w, req)
	if got := w.Header().Get(requestIDHeader); got != "trace-123" {
		t.Errorf("应沿用传入的请求 ID，实际 %q", got)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(requestIDHeader, strings.Repeat("a", requestIDMaxLen+1))
	r.ServeHTTP(w, req)
	if got := w.Header().Get(requestIDHeader); len(got) > requestIDMaxLen {
		t.Errorf("超长请求 ID 应被替换，实际长度 %d", len(got))
	}
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(16))
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"a":"b"}`)))
	if w.Code != http.StatusNoContent {
		t.Errorf("小请求体期望 204，实际 %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(strings.Repeat("x", 64))))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("超限请求体期望 413，实际 %d", w.Code)
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000/"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("白名单 Origin 应回写，实际 %q", got)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("非白名单 Origin 不应回写，实际 %q", got)
	}
}

func TestRateLimit_NilRedisPassesThrough(t *testing.T) {
	r := gin.New()
	r.POST("/signin", RateLimit(nil, 1, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/signin", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("第 %d 次请求期望 200，实际 %d", i+1, w.Code)
		}
	}
}

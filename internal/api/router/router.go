package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/serhatyuna/cengonline-backend/config"
	"github.com/serhatyuna/cengonline-backend/internal/api/handler"
	"github.com/serhatyuna/cengonline-backend/internal/api/middleware"
	"github.com/serhatyuna/cengonline-backend/internal/policy"
	"github.com/serhatyuna/cengonline-backend/pkg/jwt"
	"github.com/serhatyuna/cengonline-backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// rdb 为 nil 时不启用 Token 黑名单与登录限流
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	gate := middleware.ActionGate

	api := r.Group("/api")
	{
		// 认证模块（无需认证）
		limited := middleware.RateLimit(rdb, cfg.Auth.SignInLimit, cfg.Auth.SignInWindow)
		auth := api.Group("/auth")
		{
			auth.POST("/signin", limited, h.Auth.SignIn)
			auth.POST("/signup", limited, h.Auth.SignUp)
		}

		// 需要认证的路由
		authorized := api.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 用户模块
			users := authorized.Group("/users")
			{
				users.GET("", gate(policy.ActionUserList), h.User.ListUsers)
				users.GET("/:id", gate(policy.ActionUserRead), h.User.GetUser)
				users.POST("/attend-class/:id", gate(policy.ActionCourseEnroll), h.User.AttendClass)
			}

			// 课程模块
			courses := authorized.Group("/courses")
			{
				courses.GET("", gate(policy.ActionCourseList), h.Course.ListCourses)
				courses.GET("/mine", gate(policy.ActionCourseList), h.Course.ListMyCourses)
				courses.GET("/:id", gate(policy.ActionCourseRead), h.Course.GetCourse)
				courses.POST("", gate(policy.ActionCourseCreate), h.Course.CreateCourse)
				courses.PUT("/:id", gate(policy.ActionCourseUpdate), h.Course.UpdateCourse)
				courses.DELETE("/:id", gate(policy.ActionCourseDelete), h.Course.DeleteCourse)
			}

			// 公告模块
			announcements := authorized.Group("/announcements")
			{
				announcements.GET("/course/:course_id", gate(policy.ActionContentRead), h.Announcement.ListByCourse)
				announcements.GET("/:id/course/:course_id", gate(policy.ActionContentRead), h.Announcement.Get)
				announcements.POST("/:course_id", gate(policy.ActionContentWrite), h.Announcement.Create)
				announcements.PUT("/:id", gate(policy.ActionContentWrite), h.Announcement.Update)
				announcements.DELETE("/:id", gate(policy.ActionContentWrite), h.Announcement.Delete)
			}

			// 作业模块
			assignments := authorized.Group("/assignments")
			{
				assignments.GET("/course/:course_id", gate(policy.ActionContentRead), h.Assignment.ListByCourse)
				assignments.GET("/course/:course_id/calendar.ics", gate(policy.ActionContentRead), h.Assignment.Calendar)
				assignments.GET("/:id/course/:course_id", gate(policy.ActionContentRead), h.Assignment.Get)
				assignments.POST("/:course_id", gate(policy.ActionContentWrite), h.Assignment.Create)
				assignments.PUT("/:id", gate(policy.ActionContentWrite), h.Assignment.Update)
				assignments.DELETE("/:id", gate(policy.ActionContentWrite), h.Assignment.Delete)
			}

			// 作业提交模块
			submissions := authorized.Group("/submissions")
			{
				submissions.GET("", gate(policy.ActionSubmissionListOwned), h.Submission.ListOwned)
				submissions.GET("/assignment/:id", gate(policy.ActionSubmissionListByAssignment), h.Submission.ListByAssignment)
				submissions.GET("/assignment/:id/export", gate(policy.ActionSubmissionExport), h.Submission.Export)
				submissions.GET("/student/:id", gate(policy.ActionSubmissionListByStudent), h.Submission.ListByStudent)
				submissions.GET("/:id", gate(policy.ActionSubmissionRead), h.Submission.Get)
				submissions.POST("/:assignment_id", gate(policy.ActionSubmissionCreate), h.Submission.Create)
			}

			// 讨论帖模块
			posts := authorized.Group("/posts")
			{
				posts.GET("/course/:course_id", gate(policy.ActionContentRead), h.Post.ListByCourse)
				posts.GET("/:id/course/:course_id", gate(policy.ActionContentRead), h.Post.Get)
				posts.POST("/:course_id", gate(policy.ActionContentWrite), h.Post.Create)
				posts.PUT("/:id", gate(policy.ActionContentWrite), h.Post.Update)
				posts.DELETE("/:id", gate(policy.ActionContentWrite), h.Post.Delete)
			}

			// 评论模块
			comments := authorized.Group("/comments")
			{
				comments.GET("/post/:post_id", gate(policy.ActionCommentList), h.Post.ListComments)
				comments.POST("/post/:post_id", gate(policy.ActionCommentCreate), h.Post.AddComment)
				comments.DELETE("/:id", gate(policy.ActionCommentDelete), h.Post.DeleteComment)
			}

			// 私信模块
			messages := authorized.Group("/messages")
			{
				messages.GET("/:receiver_id", gate(policy.ActionMessageRead), h.Message.Conversation)
				messages.POST("/:receiver_id", gate(policy.ActionMessageSend), h.Message.Send)
			}
		}
	}

	return r
}

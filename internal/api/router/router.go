package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Daniyal-Wajid/ClassTrack/config"
	"github.com/Daniyal-Wajid/ClassTrack/internal/api/handler"
	"github.com/Daniyal-Wajid/ClassTrack/internal/api/middleware"
	"github.com/Daniyal-Wajid/ClassTrack/pkg/jwt"
	"github.com/Daniyal-Wajid/ClassTrack/pkg/redis"
	"github.com/Daniyal-Wajid/ClassTrack/pkg/response"
)

// 摄像头帧为 base64 图像，请求体上限放宽到 10MB
const maxBodyBytes = 10 << 20

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))
	r.Use(middleware.Metrics())

	// ── 健康检查 / 指标 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, 10000, "接口不存在")
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，登录接口限流防爆破）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/register", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Register)
		}

		// 外部集成（静态 API Key，供读卡器等设备调用）
		external := v1.Group("/external")
		external.Use(middleware.APIKeyAuth(cfg.External.APIKey))
		{
			external.GET("/sessions/active", h.External.ActiveSession)
			external.POST("/attendance", h.External.Mark)
			external.POST("/camera/events", h.Camera.LogEvent)
			external.POST("/behaviors", h.Behavior.Log)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 用户模块（管理员）
			users := authorized.Group("/users")
			{
				users.GET("/students", middleware.RoleAuth("admin", "instructor"), h.User.ListStudents)
				users.GET("/instructors", middleware.RoleAuth("admin"), h.User.ListInstructors)
				users.GET("", middleware.RoleAuth("admin"), h.User.List)
				users.POST("", middleware.RoleAuth("admin"), h.User.Create)
				users.GET("/:id", middleware.RoleAuth("admin"), h.User.Get)
				users.PUT("/:id", middleware.RoleAuth("admin"), h.User.Update)
				users.DELETE("/:id", middleware.RoleAuth("admin"), h.User.Delete)
			}

			// 课程模块
			courses := authorized.Group("/courses")
			{
				courses.GET("", h.Course.List)
				courses.GET("/:id", h.Course.Get)
				courses.POST("", middleware.RoleAuth("admin"), h.Course.Create)
				courses.POST("/with-section", middleware.RoleAuth("admin"), h.Course.CreateWithSection)
				courses.PUT("/:id", middleware.RoleAuth("admin"), h.Course.Update)
				courses.DELETE("/:id", middleware.RoleAuth("admin"), h.Course.Delete)
			}

			// 教学班模块
			sections := authorized.Group("/sections")
			{
				sections.GET("", middleware.RoleAuth("admin"), h.Section.List)
				sections.GET("/mine", middleware.RoleAuth("admin", "instructor"), h.Section.ListMine)
				sections.GET("/:id", h.Section.Get)
				sections.POST("", middleware.RoleAuth("admin"), h.Section.Create)
				sections.PUT("/:id", middleware.RoleAuth("admin"), h.Section.Update)
				sections.DELETE("/:id", middleware.RoleAuth("admin"), h.Section.Delete)
				sections.PUT("/:id/instructor", middleware.RoleAuth("admin"), h.Section.AssignInstructor)
				sections.POST("/:id/students", middleware.RoleAuth("admin"), h.Section.EnrollStudents)
				sections.GET("/:id/attendance", middleware.RoleAuth("admin", "instructor"), h.Section.Report)
			}

			// 会话模块
			sessions := authorized.Group("/sessions")
			{
				sessions.POST("/start", middleware.RoleAuth("admin", "instructor"), h.Session.Start)
				sessions.POST("/end", middleware.RoleAuth("admin", "instructor"), h.Session.End)
				sessions.GET("/current", middleware.RoleAuth("admin", "instructor"), h.Session.Current)
				sessions.GET("/ongoing", middleware.RoleAuth("admin"), h.Session.ListOngoing)
				sessions.GET("/:id", h.Session.Get)
				sessions.GET("/:id/attendance", middleware.RoleAuth("admin", "instructor"), h.Session.Attendance)
				sessions.PUT("/:id/attendance", middleware.RoleAuth("admin", "instructor"), h.Attendance.Manual)
				sessions.POST("/:id/rfid", middleware.RoleAuth("admin", "instructor"), h.Attendance.Rfid)
				sessions.GET("/:id/rfid-scans", middleware.RoleAuth("admin", "instructor"), h.Session.RfidScans)
				sessions.POST("/:id/camera/frame", middleware.RoleAuth("admin", "instructor"), h.Camera.CaptureFrame)
				sessions.GET("/:id/camera/logs", middleware.RoleAuth("admin", "instructor"), h.Camera.Logs)
			}

			// 考勤模块
			attendance := authorized.Group("/attendance")
			{
				attendance.POST("/mark", middleware.RoleAuth("admin", "instructor"), h.Attendance.Mark)
				attendance.GET("/my", middleware.RoleAuth("student"), h.Attendance.My)
				attendance.GET("/records", middleware.RoleAuth("admin"), h.Attendance.AdminRecords)
			}

			// 摄像头 / 行为模块
			authorized.POST("/camera/events", middleware.RoleAuth("admin", "instructor"), h.Camera.LogEvent)
			behaviors := authorized.Group("/behaviors")
			{
				behaviors.POST("", middleware.RoleAuth("admin", "instructor"), h.Behavior.Log)
				behaviors.GET("", middleware.RoleAuth("admin", "instructor"), h.Behavior.List)
				behaviors.GET("/student/:id", middleware.RoleAuth("admin", "instructor"), h.Behavior.ListByStudent)
				behaviors.GET("/session/:id", middleware.RoleAuth("admin", "instructor"), h.Behavior.ListBySession)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/sections/:id/attendance", middleware.RoleAuth("admin", "instructor"), h.Export.ExportSectionAttendance)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go

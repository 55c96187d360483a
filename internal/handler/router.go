package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/AskKenImani/school-backend/internal/middleware"
	"github.com/AskKenImani/school-backend/internal/models"
	"github.com/AskKenImani/school-backend/internal/service"
	"github.com/AskKenImani/school-backend/pkg/config"
	"github.com/AskKenImani/school-backend/pkg/logger"
	corsmiddleware "github.com/AskKenImani/school-backend/pkg/middleware/cors"
	reqidmiddleware "github.com/AskKenImani/school-backend/pkg/middleware/requestid"
)

// RouterParams groups everything the router needs.
type RouterParams struct {
	Config  *config.Config
	Logger  *zap.Logger
	Auth    *service.AuthService
	Metrics *service.MetricsService

	AuthHandler       *AuthHandler
	StudentHandler    *StudentHandler
	TeacherHandler    *TeacherHandler
	ClassHandler      *ClassHandler
	SubjectHandler    *SubjectHandler
	AttendanceHandler *AttendanceHandler
	ResultHandler     *ResultHandler
	ConductHandler    *ConductHandler
	NoteHandler       *NoteHandler
	TimetableHandler  *TimetableHandler
	DashboardHandler  *DashboardHandler
	MetricsHandler    *MetricsHandler
}

// NewRouter assembles the gin engine with all routes and middleware.
func NewRouter(p RouterParams) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(p.Logger))
	r.Use(corsmiddleware.New(p.Config.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(p.Metrics))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", p.MetricsHandler.Health)
	r.GET("/ready", p.MetricsHandler.Health)
	r.GET("/metrics", p.MetricsHandler.Prometheus)

	if p.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	if p.Config.Uploads.Dir != "" {
		r.Static(p.Config.Uploads.PublicURL, p.Config.Uploads.Dir)
	}

	api := r.Group("/api")
	api.POST("/auth/login", p.AuthHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.JWT(p.Auth))

	authed.GET("/auth/me", p.AuthHandler.Me)

	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	staffOrSelf := middleware.RequireRolesOrSelf("studentId", models.RoleAdmin, models.RoleTeacher)

	students := authed.Group("/students")
	{
		students.GET("", staff, p.StudentHandler.List)
		students.POST("", adminOnly, p.StudentHandler.Create)
		students.GET("/:studentId", staffOrSelf, p.StudentHandler.Get)
		students.GET("/:studentId/attendance", staffOrSelf, p.StudentHandler.Attendance)
	}

	teachers := authed.Group("/teachers")
	{
		teachers.GET("", staff, p.TeacherHandler.List)
		teachers.POST("", adminOnly, p.TeacherHandler.Create)
		teachers.GET("/:teacherId", staff, p.TeacherHandler.Get)
		teachers.GET("/:teacherId/notes", staff, p.TeacherHandler.Notes)
	}

	classes := authed.Group("/classes")
	{
		classes.GET("", staff, p.ClassHandler.List)
		classes.POST("", adminOnly, p.ClassHandler.Create)
		classes.PUT("/:classId", adminOnly, p.ClassHandler.Update)
	}

	subjects := authed.Group("/subjects")
	{
		subjects.GET("", staff, p.SubjectHandler.List)
		subjects.POST("", adminOnly, p.SubjectHandler.Create)
		subjects.DELETE("/:subjectId", adminOnly, p.SubjectHandler.Delete)
	}

	attendance := authed.Group("/attendance")
	{
		attendance.GET("", staff, p.AttendanceHandler.List)
		attendance.POST("", staff, p.AttendanceHandler.Mark)
	}

	results := authed.Group("/results")
	{
		results.GET("", staff, p.ResultHandler.List)
		results.POST("", staff, p.ResultHandler.Create)
		results.PUT("/:resultId", staff, p.ResultHandler.Update)
		results.GET("/student/:studentId", staffOrSelf, p.ResultHandler.StudentResults)
		results.GET("/student/:studentId/summary", staffOrSelf, p.ResultHandler.Summary)
		results.GET("/student/:studentId/report", staffOrSelf, p.ResultHandler.Report)
	}

	conduct := authed.Group("/conduct")
	{
		conduct.POST("", staff, p.ConductHandler.Upsert)
		conduct.GET("/:studentId", staffOrSelf, p.ConductHandler.Get)
	}

	notes := authed.Group("/notes")
	{
		notes.POST("", staff, p.NoteHandler.Create)
	}

	timetable := authed.Group("/timetable")
	{
		timetable.GET("", p.TimetableHandler.List)
		timetable.POST("", adminOnly, p.TimetableHandler.Create)
	}

	authed.GET("/dashboard", adminOnly, p.DashboardHandler.Summary)
	authed.GET("/reports", staff, p.DashboardHandler.ReportTotals)

	return r
}

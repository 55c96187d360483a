package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	_ "github.com/AskKenImani/school-backend/api/swagger"
	"github.com/AskKenImani/school-backend/internal/handler"
	"github.com/AskKenImani/school-backend/internal/repository"
	"github.com/AskKenImani/school-backend/internal/service"
	"github.com/AskKenImani/school-backend/pkg/cache"
	"github.com/AskKenImani/school-backend/pkg/config"
	"github.com/AskKenImani/school-backend/pkg/database"
	"github.com/AskKenImani/school-backend/pkg/logger"
	"github.com/AskKenImani/school-backend/pkg/report"
	"github.com/AskKenImani/school-backend/pkg/storage"
)

// @title School Backend API
// @version 1.0.0
// @description Role-based school management backend: students, teachers, classes, attendance, results and report sheets
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
	} else {
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, true)
		defer cacheRepo.Close()
	}

	files, err := storage.NewLocalStorage(cfg.Uploads.Dir, cfg.Uploads.PublicURL)
	if err != nil {
		logr.Sugar().Fatalw("failed to init upload storage", "error", err)
	}

	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	classRepo := repository.NewClassRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	resultRepo := repository.NewResultRepository(db)
	conductRepo := repository.NewConductRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	timetableRepo := repository.NewTimetableRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret: cfg.JWT.Secret,
		Expiry: cfg.JWT.Expiration,
		Issuer: cfg.School.Name,
	})
	studentSvc := service.NewStudentService(studentRepo, userRepo, attendanceRepo, validate, logr)
	noteSvc := service.NewNoteService(noteRepo, files, validate, logr)
	teacherSvc := service.NewTeacherService(teacherRepo, userRepo, validate, logr)
	classSvc := service.NewClassService(classRepo, studentRepo, validate, logr)
	subjectSvc := service.NewSubjectService(subjectRepo, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, validate, logr)
	conductSvc := service.NewConductService(conductRepo, validate, logr)
	timetableSvc := service.NewTimetableService(timetableRepo, validate, logr)

	renderer := report.NewRenderer(cfg.School.Name)
	resultSvc := service.NewResultService(resultRepo, studentRepo, conductRepo, renderer, validate, logr).
		WithMetrics(metricsSvc)

	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Students:   studentRepo,
		Teachers:   teacherRepo,
		Classes:    classRepo,
		Results:    resultRepo,
		Attendance: attendanceRepo,
		Cache:      cacheSvc,
		CacheTTL:   cfg.Dashboard.CacheTTL,
		Logger:     logr,
	})

	router := handler.NewRouter(handler.RouterParams{
		Config:  cfg,
		Logger:  logr,
		Auth:    authSvc,
		Metrics: metricsSvc,

		AuthHandler:       handler.NewAuthHandler(authSvc),
		StudentHandler:    handler.NewStudentHandler(studentSvc),
		TeacherHandler:    handler.NewTeacherHandler(teacherSvc, noteSvc),
		ClassHandler:      handler.NewClassHandler(classSvc),
		SubjectHandler:    handler.NewSubjectHandler(subjectSvc),
		AttendanceHandler: handler.NewAttendanceHandler(attendanceSvc),
		ResultHandler:     handler.NewResultHandler(resultSvc),
		ConductHandler:    handler.NewConductHandler(conductSvc),
		NoteHandler:       handler.NewNoteHandler(noteSvc),
		TimetableHandler:  handler.NewTimetableHandler(timetableSvc),
		DashboardHandler:  handler.NewDashboardHandler(dashboardSvc),
		MetricsHandler:    handler.NewMetricsHandler(metricsSvc),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := router.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

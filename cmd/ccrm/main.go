package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/AshishRanjanPandey/ccrm/internal/cli"
	"github.com/AshishRanjanPandey/ccrm/internal/datastore"
	"github.com/AshishRanjanPandey/ccrm/internal/handler"
	"github.com/AshishRanjanPandey/ccrm/internal/middleware"
	"github.com/AshishRanjanPandey/ccrm/internal/models"
	"github.com/AshishRanjanPandey/ccrm/internal/repository"
	"github.com/AshishRanjanPandey/ccrm/internal/service"
	"github.com/AshishRanjanPandey/ccrm/pkg/config"
	"github.com/AshishRanjanPandey/ccrm/pkg/logger"
	corsmiddleware "github.com/AshishRanjanPandey/ccrm/pkg/middleware/cors"
	reqidmiddleware "github.com/AshishRanjanPandey/ccrm/pkg/middleware/requestid"
	"github.com/AshishRanjanPandey/ccrm/pkg/storage"
)

// exportRetention bounds how long rendered transcripts stay on disk before
// the startup sweep removes them.
const exportRetention = 30 * 24 * time.Hour

type app struct {
	cfg    *config.Config
	logger *zap.Logger

	studentRepo *repository.StudentRepository
	courseRepo  *repository.CourseRepository
	ledger      *repository.EnrollmentLedger

	students    *service.StudentService
	courses     *service.CourseService
	enrollments *service.EnrollmentService
	transcripts *service.TranscriptService

	store *datastore.Store
}

func main() {
	serve := flag.Bool("serve", false, "run the HTTP server instead of the interactive console")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	a, err := buildApp(cfg, logr)
	if err != nil {
		logr.Sugar().Fatalw("startup failed", "error", err)
	}

	if *serve {
		a.loadSnapshots()
		a.runServer()
		return
	}
	a.runConsole()
}

func buildApp(cfg *config.Config, logr *zap.Logger) (*app, error) {
	studentRepo := repository.NewStudentRepository()
	courseRepo := repository.NewCourseRepository()
	ledger := repository.NewEnrollmentLedger()

	validate := validator.New()

	students := service.NewStudentService(studentRepo, validate, logr)
	courses := service.NewCourseService(courseRepo, validate, logr)
	enrollments := service.NewEnrollmentService(ledger, studentRepo, courseRepo, cfg.Enrollment.MaxCreditsPerStudent, validate, logr)

	exports, err := storage.NewLocalStorage(cfg.Exports.Dir)
	if err != nil {
		return nil, err
	}
	if deleted, cleanupErr := exports.CleanupOlderThan(exportRetention); cleanupErr != nil {
		logr.Warn("export cleanup failed", zap.Error(cleanupErr))
	} else if len(deleted) > 0 {
		logr.Info("stale exports removed", zap.Int("count", len(deleted)))
	}
	transcripts := service.NewTranscriptService(enrollments, studentRepo, courseRepo, exports, nil, nil, logr)

	store, err := datastore.New(cfg.Data.Dir, logr)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:         cfg,
		logger:      logr,
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		ledger:      ledger,
		students:    students,
		courses:     courses,
		enrollments: enrollments,
		transcripts: transcripts,
		store:       store,
	}, nil
}

// loadSnapshots restores persisted state before serving. The console loads
// on demand from its data menu instead. Enrollment rows replay through the
// service so every rule still applies.
func (a *app) loadSnapshots() {
	students, err := a.store.LoadStudents()
	if err != nil {
		a.logger.Warn("failed to load student snapshot", zap.Error(err))
		return
	}
	courses, err := a.store.LoadCourses()
	if err != nil {
		a.logger.Warn("failed to load course snapshot", zap.Error(err))
		return
	}
	if len(students) == 0 && len(courses) == 0 {
		return
	}
	a.studentRepo.Restore(students)
	a.courseRepo.Restore(courses)

	err = a.store.ReplayEnrollments(
		func(regNo, code string) error {
			_, enrollErr := a.enrollments.Enroll(service.EnrollRequest{RegNo: regNo, CourseCode: code})
			return enrollErr
		},
		func(regNo, code string, g models.Grade) error {
			return a.enrollments.AssignGrade(service.AssignGradeRequest{RegNo: regNo, CourseCode: code, Grade: g})
		},
	)
	if err != nil {
		a.logger.Warn("failed to replay enrollments", zap.Error(err))
	}
	a.logger.Info("snapshots restored",
		zap.Int("students", len(students)),
		zap.Int("courses", len(courses)),
	)
}

func (a *app) runConsole() {
	console := cli.New(os.Stdin, os.Stdout,
		a.students, a.courses, a.enrollments, a.transcripts,
		a.studentRepo, a.courseRepo, a.store, a.logger)
	console.Run()
}

func (a *app) runServer() {
	if a.cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(a.logger))
	r.Use(corsmiddleware.New(a.cfg.CORS.AllowedOrigins))

	var metrics *service.MetricsService
	if a.cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
		a.enrollments.WithMetrics(metrics)
		r.Use(middleware.Metrics(metrics))
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	studentHandler := handler.NewStudentHandler(a.students)
	courseHandler := handler.NewCourseHandler(a.courses)
	enrollmentHandler := handler.NewEnrollmentHandler(a.enrollments, a.transcripts)

	api := r.Group(a.cfg.APIPrefix)
	{
		api.GET("/students", studentHandler.List)
		api.POST("/students", studentHandler.Create)
		api.GET("/students/:regNo", studentHandler.Get)
		api.PATCH("/students/:regNo", studentHandler.Update)
		api.DELETE("/students/:regNo", studentHandler.Deactivate)
		api.GET("/students/:regNo/credits", enrollmentHandler.Credits)
		api.GET("/students/:regNo/gpa", enrollmentHandler.GPA)
		api.POST("/students/:regNo/transcript", enrollmentHandler.Transcript)

		api.GET("/courses", courseHandler.List)
		api.POST("/courses", courseHandler.Create)
		api.GET("/courses/:code", courseHandler.Get)
		api.DELETE("/courses/:code", courseHandler.Deactivate)

		api.GET("/enrollments", enrollmentHandler.List)
		api.POST("/enrollments", enrollmentHandler.Enroll)
		api.PUT("/enrollments/grade", enrollmentHandler.AssignGrade)
		api.DELETE("/enrollments/:regNo/:code", enrollmentHandler.Withdraw)
	}

	addr := fmt.Sprintf(":%d", a.cfg.Port)
	a.logger.Sugar().Infow("server starting", "addr", addr, "env", a.cfg.Env)
	if err := r.Run(addr); err != nil {
		a.logger.Sugar().Fatalw("server failed", "error", err)
	}
}

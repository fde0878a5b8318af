package main

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	"github.com/avellar-lune/academy-records/internal/handler"
	"github.com/avellar-lune/academy-records/internal/repository"
	"github.com/avellar-lune/academy-records/internal/service"
	"github.com/avellar-lune/academy-records/pkg/config"
	"github.com/avellar-lune/academy-records/pkg/database"
	"github.com/avellar-lune/academy-records/pkg/export"
	"github.com/avellar-lune/academy-records/pkg/logger"
)

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

	db, err := database.New(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to open database", "error", err)
	}
	defer db.Close()

	studentRepo := repository.NewStudentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	validate := validator.New()

	activitySvc := service.NewActivityService(activityRepo, cfg.Activity.RecentLimit, logr)
	studentSvc := service.NewStudentService(studentRepo, activitySvc, validate, logr)
	courseSvc := service.NewCourseService(courseRepo, activitySvc, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, studentRepo, courseRepo, activitySvc, validate, logr)
	gradeSvc := service.NewGradeService(gradeRepo, enrollmentRepo, activitySvc, validate, logr)
	dashboardSvc := service.NewDashboardService(statsRepo, activitySvc, logr)
	metricsSvc := service.NewMetricsService()

	handlers := handler.Handlers{
		Students:    handler.NewStudentHandler(studentSvc),
		Courses:     handler.NewCourseHandler(courseSvc),
		Enrollments: handler.NewEnrollmentHandler(enrollmentSvc, gradeSvc),
		Grades:      handler.NewGradeHandler(gradeSvc),
		Dashboard:   handler.NewDashboardHandler(dashboardSvc, activitySvc),
		Metrics:     metricsSvc,
	}

	if cfg.Export.CSVEnabled || cfg.Export.PDFEnabled {
		exportSvc := service.NewExportService(studentRepo, courseRepo, activitySvc, logr, export.NewCSVExporter(), export.NewPDFExporter())
		handlers.Exports = handler.NewExportHandler(exportSvc, cfg.Export)
	}

	r := handler.NewRouter(cfg, logr, db, handlers)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "driver", cfg.Database.Driver)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

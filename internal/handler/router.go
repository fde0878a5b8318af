package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/avellar-lune/academy-records/internal/middleware"
	"github.com/avellar-lune/academy-records/internal/service"
	"github.com/avellar-lune/academy-records/pkg/config"
	"github.com/avellar-lune/academy-records/pkg/logger"
	"github.com/avellar-lune/academy-records/pkg/middleware/cors"
	"github.com/avellar-lune/academy-records/pkg/middleware/requestid"
)

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Students    *StudentHandler
	Courses     *CourseHandler
	Enrollments *EnrollmentHandler
	Grades      *GradeHandler
	Dashboard   *DashboardHandler
	Exports     *ExportHandler
	Metrics     *service.MetricsService
}

// NewRouter assembles the gin engine with middleware and all routes.
func NewRouter(cfg *config.Config, log *zap.Logger, db *sqlx.DB, h Handlers) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestid.Middleware())
	r.Use(logger.GinMiddleware(log))
	r.Use(cors.New(cfg.CORS.AllowedOrigins))
	if h.Metrics != nil {
		r.Use(middleware.Metrics(h.Metrics))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	if h.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))
	}

	api := r.Group(cfg.APIPrefix)
	{
		students := api.Group("/students")
		{
			students.GET("", h.Students.List)
			students.POST("", h.Students.Create)
			students.GET("/lookup", h.Students.Lookup)
			students.GET("/:id", h.Students.Get)
			students.PUT("/:id", h.Students.Update)
			students.DELETE("/:id", h.Students.Delete)
		}

		courses := api.Group("/courses")
		{
			courses.GET("", h.Courses.List)
			courses.POST("", h.Courses.Create)
			courses.GET("/lookup", h.Courses.Lookup)
			courses.GET("/:id", h.Courses.Get)
			courses.PUT("/:id", h.Courses.Update)
			courses.DELETE("/:id", h.Courses.Delete)
		}

		enrollments := api.Group("/enrollments")
		{
			enrollments.GET("", h.Enrollments.List)
			enrollments.POST("", h.Enrollments.Create)
			enrollments.DELETE("/:id", h.Enrollments.Delete)
			enrollments.GET("/:id/grades", h.Enrollments.Grades)
		}

		grades := api.Group("/grades")
		{
			grades.GET("", h.Grades.List)
			grades.POST("", h.Grades.Create)
		}

		dashboard := api.Group("/dashboard")
		{
			dashboard.GET("", h.Dashboard.Summary)
			dashboard.GET("/counts", h.Dashboard.Counts)
			dashboard.GET("/activity", h.Dashboard.Activity)
		}

		if h.Exports != nil {
			exports := api.Group("/exports")
			{
				exports.GET("/students", h.Exports.Students)
				exports.GET("/courses", h.Exports.Courses)
			}
		}
	}

	return r
}

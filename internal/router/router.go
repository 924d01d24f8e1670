package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ssce/examcell-backend/internal/config"
	"github.com/ssce/examcell-backend/internal/handler"
	"github.com/ssce/examcell-backend/internal/middleware"
	"github.com/ssce/examcell-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Student    *handler.StudentHandler
	Syllabus   *handler.SyllabusHandler
	Exam       *handler.ExamHandler
	Attendance *handler.AttendanceHandler
	Export     *handler.ExportHandler
	Meta       *handler.MetaHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.OK(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// PDF rendering is the one expensive route; keep it rate limited.
	exportLimiter := middleware.NewRateLimiter(30, time.Minute)

	api := router.Group("/api")
	{
		api.GET("/students/:batch/:deptCode", handlers.Student.ListByBatchDept)
		api.GET("/syllabus/:regulation/:deptCode/:semester", handlers.Syllabus.ListPapers)
		api.GET("/exams", handlers.Exam.ListScheduled)
		api.POST("/attendance", handlers.Attendance.Submit)
		api.POST("/exams/export", exportLimiter.Middleware(), handlers.Export.RegistrationForms)
		api.GET("/meta/catalog", handlers.Meta.Catalog)
	}

	return router
}

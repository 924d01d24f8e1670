package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/ssce/examcell-backend/internal/config"
	"github.com/ssce/examcell-backend/internal/database"
	"github.com/ssce/examcell-backend/internal/export"
	"github.com/ssce/examcell-backend/internal/handler"
	"github.com/ssce/examcell-backend/internal/logger"
	"github.com/ssce/examcell-backend/internal/repository"
	"github.com/ssce/examcell-backend/internal/router"
	"github.com/ssce/examcell-backend/internal/service"
	"github.com/ssce/examcell-backend/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting ExamCell Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis (optional lookup cache) ──────────────────────
	var rdb *redis.Client
	if rdb, err = database.NewRedisClient(ctx, cfg, log); err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, lookup cache disabled")
		rdb = nil
	} else {
		defer rdb.Close()
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	studentRepo := repository.NewStudentRepository(pool)
	syllabusRepo := repository.NewSyllabusRepository(pool)
	timetableRepo := repository.NewTimetableRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	studentService := service.NewStudentService(studentRepo, rdb, cfg.CacheTTL, log)
	syllabusService := service.NewSyllabusService(syllabusRepo, rdb, cfg.CacheTTL, log)
	examService := service.NewExamService(timetableRepo, rdb, cfg.CacheTTL, log)
	attendanceService := service.NewAttendanceService(examService, studentService, attendanceRepo, log)
	registrationService := service.NewRegistrationService(cfg.PaperFee, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	renderer := export.NewRenderer(cfg.PDFFontPath)
	handlers := &router.Handlers{
		Student:    handler.NewStudentHandler(studentService),
		Syllabus:   handler.NewSyllabusHandler(syllabusService),
		Exam:       handler.NewExamHandler(examService),
		Attendance: handler.NewAttendanceHandler(attendanceService),
		Export:     handler.NewExportHandler(renderer, registrationService, log),
		Meta:       handler.NewMetaHandler(cfg),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}

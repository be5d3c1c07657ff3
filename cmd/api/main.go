package main

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abhishekagarwal777/resume-analyzer/internal/config"
	"github.com/abhishekagarwal777/resume-analyzer/internal/handlers"
	"github.com/abhishekagarwal777/resume-analyzer/internal/logger"
	"github.com/abhishekagarwal777/resume-analyzer/internal/repositories"
	"github.com/abhishekagarwal777/resume-analyzer/internal/services"
	"github.com/abhishekagarwal777/resume-analyzer/web"
)

func main() {
	cfg := config.Load()
	log := logger.New()

	// Initialize database, retrying while Postgres comes up.
	var db *gorm.DB
	err := services.Retry(context.Background(), 5, 2*time.Second, func() error {
		var initErr error
		db, initErr = config.InitDatabase(cfg)
		return initErr
	})
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	log.Info("database initialized")

	repo := repositories.NewAnalysisRepository(db)

	extractor := services.NewPDFExtractor()
	generator, err := services.NewGeminiClient(
		context.Background(),
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		cfg.Gemini.Timeout,
	)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize Gemini client")
	}
	analyzer := services.NewAnalyzer(extractor, generator, log)
	log.Info("services initialized")

	resumeHandler := handlers.NewResumeHandler(repo, analyzer, cfg.Upload.MaxFileSize)
	healthHandler := handlers.NewHealthHandler(db)

	app := fiber.New(fiber.Config{
		AppName:      "Resume Analyzer API",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		// Leave headroom above the per-file limit so multipart framing does
		// not trip the transport-level 413 before the handler can answer 400.
		BodyLimit:    int(cfg.Upload.MaxFileSize) + 1024*1024,
		ErrorHandler: handlers.NewErrorHandler(log, cfg.IsProduction()),
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: !cfg.IsProduction()}))
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestid}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Analysis is the expensive path; rate-limit it separately from reads.
	uploadLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusTooManyRequests,
				"Too many uploads. Please wait a moment and try again.")
		},
	})

	app.Get("/health", healthHandler.Handle)
	resumeHandler.RegisterRoutes(app.Group("/api/resumes"), uploadLimiter)

	// The embedded client is mounted last so it never shadows the API.
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		log.WithError(err).Fatal("failed to mount embedded client")
	}
	app.Use(filesystem.New(filesystem.Config{
		Root:  http.FS(staticFS),
		Index: "index.html",
	}))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("shutting down server")
		if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
			log.WithError(err).Error("server forced to shutdown")
		}
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.WithField("addr", addr).Info("server starting")
	if err := app.Listen(addr); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"jobtrackr/fit-engine/internal/config"
	"jobtrackr/fit-engine/internal/handlers"
	"jobtrackr/fit-engine/internal/logger"
	"jobtrackr/fit-engine/internal/repositories"
	"jobtrackr/fit-engine/internal/services"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.Server.Env)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}
	zlog.Info("database ready")

	// Repositories
	jobRepo := repositories.NewJobRepository(db)
	cvRepo := repositories.NewCVRepository(db)
	analysisRepo := repositories.NewAnalysisRepository(db)
	trainingRepo := repositories.NewTrainingRepository(db)

	// Gemini client (LLM + embeddings)
	ctx := context.Background()
	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize gemini client", zap.Error(err))
	}
	zlog.Info("gemini client ready", zap.String("model", cfg.Gemini.Model))

	// Analysis tools
	skillExtractor := services.NewSkillExtractor()
	similarityScorer := services.NewSimilarityScorer(geminiService)
	roleLevelAnalyzer := services.NewRoleLevelAnalyzer()
	toolRegistry := services.NewToolRegistry(skillExtractor, similarityScorer, roleLevelAnalyzer)

	// Scoring services
	heuristicAligner := services.NewHeuristicAligner()
	analyzerService := services.NewAnalyzerService(
		jobRepo,
		cvRepo,
		analysisRepo,
		trainingRepo,
		geminiService,
		toolRegistry,
		zlog,
		cfg.Analyzer.MaxToolRounds,
		cfg.Analyzer.RetryMaxAttempts,
		cfg.Gemini.Model,
	)
	feedbackService := services.NewFeedbackService(trainingRepo, zlog)
	batchScorer := services.NewBatchScorer(jobRepo, heuristicAligner, analyzerService, zlog, cfg.Analyzer.BatchConcurrency)
	zlog.Info("scoring services ready")

	// Handlers
	analyzeHandler := handlers.NewAnalyzeHandler(analyzerService, zlog, cfg.Analyzer.ProgressBufferSize)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)
	matchHandler := handlers.NewMatchHandler(jobRepo, cvRepo, heuristicAligner, batchScorer)

	app := fiber.New(fiber.Config{
		AppName:      "Job-Fit Scoring Engine",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/analyses", analyzeHandler.HandleAnalyze)
	api.Post("/analyses/:id/feedback", feedbackHandler.HandleFeedback)
	api.Post("/match", matchHandler.HandleMatch)
	api.Post("/match/batch", matchHandler.HandleBatchMatch)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Job-Fit Scoring Engine",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/analyses",
				"POST /api/v1/analyses/:id/feedback",
				"POST /api/v1/match",
				"POST /api/v1/match/batch",
			},
		})
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			zlog.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

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
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"anvaya/anvaya-api/internal/config"
	"anvaya/anvaya-api/internal/handlers"
	"anvaya/anvaya-api/internal/logger"
	"anvaya/anvaya-api/internal/repositories"
	"anvaya/anvaya-api/internal/services"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.Server.LogJSON, cfg.Server.LogDebug)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	appRepo := repositories.NewApplicationRepository(db)
	docRepo := repositories.NewDocumentRepository(db)
	evalRepo := repositories.NewEvaluationRepository(db)
	faceRepo := repositories.NewFaceEnrollmentRepository(db)
	notifRepo := repositories.NewNotificationRepository(db)
	msgRepo := repositories.NewMessageRepository(db)
	jobRequestRepo := repositories.NewJobRequestRepository(db)

	// Storage
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		zlog.Fatal("failed to create upload directory", zap.Error(err))
	}

	// Scoring pipeline: one Gemini client per configured API key, tried in
	// rotation order.
	ctx := context.Background()
	var scoringModels []services.ScoringModel
	for _, key := range cfg.Gemini.APIKeys {
		model, err := services.NewGeminiModel(ctx, key, cfg.Gemini.Model)
		if err != nil {
			zlog.Fatal("failed to initialize gemini client", zap.Error(err))
		}
		scoringModels = append(scoringModels, model)
	}

	scorer, err := services.NewScorerService(
		scoringModels,
		services.NewResumeParserService(),
		cfg.Gemini.Timeout,
		cfg.Worker.RetryMaxAttempts,
		cfg.Worker.RetryInitialDelay,
		zlog,
	)
	if err != nil {
		zlog.Fatal("failed to initialize scorer", zap.Error(err))
	}

	// Face pipeline
	faceVault, err := services.NewFaceVaultService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		zlog.Fatal("failed to initialize face vault", zap.Error(err))
	}

	if err := faceVault.InitCollection(ctx, cfg.Face.EmbeddingDim); err != nil {
		zlog.Fatal("failed to initialize face collection", zap.Error(err))
	}

	faceEncoder := services.NewRemoteFaceEncoder(
		cfg.Face.EncoderURL,
		cfg.Face.EncoderTag,
		cfg.Face.Timeout,
	)

	faceAuth := services.NewFaceAuthService(
		faceEncoder,
		faceVault,
		faceRepo,
		cfg.Face.MatchThreshold,
		cfg.Face.LivenessMargin,
		zlog,
	)

	// Auth
	mailer := services.NewSMTPMailer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.From,
		cfg.SMTP.Password,
		zlog,
	)
	authService := services.NewAuthService(userRepo, mailer, cfg.SMTP.OTPTTL, zlog)

	// Evaluator + worker
	evaluatorService := services.NewEvaluatorService(
		evalRepo,
		docRepo,
		jobRepo,
		appRepo,
		notifRepo,
		scorer,
		zlog,
	)

	worker := services.NewWorker(
		evalRepo,
		evaluatorService,
		cfg.Worker.Concurrency,
		zlog,
	)
	worker.Start(ctx)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, faceRepo)
	faceHandler := handlers.NewFaceHandler(faceAuth)
	uploadHandler := handlers.NewUploadHandler(docRepo, storageService, cfg.Storage.MaxFileSize)
	evaluateHandler := handlers.NewEvaluationHandler(evalRepo, docRepo, jobRepo, worker)
	resultHandler := handlers.NewResultHandler(evalRepo)
	jobHandler := handlers.NewJobHandler(jobRepo, appRepo)
	applicationHandler := handlers.NewApplicationHandler(appRepo, jobRepo, docRepo, evalRepo, notifRepo, worker, zlog)
	notificationHandler := handlers.NewNotificationHandler(notifRepo)
	messageHandler := handlers.NewMessageHandler(msgRepo)
	jobRequestHandler := handlers.NewJobRequestHandler(jobRequestRepo, msgRepo, notifRepo, zlog)

	app := fiber.New(fiber.Config{
		AppName:      "Anvaya API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-User-ID",
	}))

	// Routes
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.HandleSignup)
	auth.Post("/verify-otp", authHandler.HandleVerifyOTP)
	auth.Post("/resend-otp", authHandler.HandleResendOTP)
	auth.Post("/login", authHandler.HandleLogin)

	face := api.Group("/face")
	face.Post("/register", faceHandler.HandleRegister)
	face.Post("/verify", faceHandler.HandleVerify)
	face.Post("/liveness", faceHandler.HandleLiveness)

	api.Post("/upload", uploadHandler.HandleUpload)
	api.Post("/evaluate", evaluateHandler.HandleEvaluate)
	api.Get("/result/:id", resultHandler.HandleGetResult)

	api.Post("/jobs", jobHandler.HandleCreateJob)
	api.Get("/jobs", jobHandler.HandleListJobs)
	api.Get("/jobs/:id", jobHandler.HandleGetJob)
	api.Put("/jobs/:id", jobHandler.HandleUpdateJob)
	api.Delete("/jobs/:id", jobHandler.HandleDeleteJob)
	api.Post("/jobs/:id/apply", applicationHandler.HandleApply)

	api.Get("/applications", applicationHandler.HandleListApplications)
	api.Put("/applications/:id/status", applicationHandler.HandleUpdateStatus)

	api.Get("/notifications", notificationHandler.HandleList)
	api.Put("/notifications/read", notificationHandler.HandleMarkRead)

	api.Post("/messages", messageHandler.HandleSend)
	api.Get("/messages", messageHandler.HandleListConversation)
	api.Put("/messages/read", messageHandler.HandleMarkRead)

	api.Post("/job-requests", jobRequestHandler.HandleCreate)
	api.Get("/job-requests", jobRequestHandler.HandleList)
	api.Get("/job-requests/:id", jobRequestHandler.HandleGet)
	api.Put("/job-requests/:id", jobRequestHandler.HandleUpdate)
	api.Delete("/job-requests/:id", jobRequestHandler.HandleDelete)
	api.Post("/job-requests/:id/interest", jobRequestHandler.HandleExpressInterest)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("shutting down server")
		worker.Stop()
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

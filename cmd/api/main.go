package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vidvaan/internal/config"
	"vidvaan/internal/database"
	"vidvaan/internal/handler"
	"vidvaan/internal/identity"
	"vidvaan/internal/logger"
	"vidvaan/internal/middleware"
	"vidvaan/internal/repository"
	"vidvaan/internal/service"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Error reporting is optional; an empty DSN leaves it off.
	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.Env,
		}); err != nil {
			appLogger.Error("Sentry init failed", zap.Error(err))
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Connect to database
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN(), cfg.DB.MaxConns)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	userRepository := repository.NewSQLXUserRepository(db)
	requestRepository := repository.NewSQLXRequestRepository(db)
	resultRepository := repository.NewSQLXResultRepository(db)
	assessmentRepository := repository.NewSQLXAssessmentRepository(db)

	// Token verifier against the identity provider
	verifier := identity.NewGoogleVerifier(cfg.Identity)
	appLogger.Info("Identity verifier initialized", zap.String("projectID", cfg.Identity.ProjectID))

	// Initialize services
	userService := service.NewUserService(userRepository)
	requestService := service.NewRequestService(requestRepository, resultRepository)
	assessmentService := service.NewAssessmentService(assessmentRepository)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	requestHandler := handler.NewRequestHandler(requestService)
	assessmentHandler := handler.NewAssessmentHandler(assessmentService)
	healthHandler := handler.NewHealthHandler(cfg, db)

	app := fiber.New(fiber.Config{
		ReadTimeout:  20 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	if cfg.Sentry.DSN != "" {
		app.Use(sentryfiber.New(sentryfiber.Options{
			Repanic:         true,
			WaitForDelivery: false,
		}))
	}

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	// API group
	apiGroup := app.Group("/api")

	apiGroup.Get("/health", healthHandler.Health)
	apiGroup.Get("/debug", healthHandler.Debug)

	protected := middleware.Protected(verifier)

	// Request gateway routes
	requestGroup := apiGroup.Group("/requests", protected)
	requestGroup.Post("/", requestHandler.CreateRequest)
	requestGroup.Get("/", requestHandler.ListRequests)
	requestGroup.Get("/:requestId", requestHandler.GetRequestByID)

	// Account routes
	apiGroup.Post("/users", protected, userHandler.UpsertUser)

	// Inline evaluation routes
	evaluateGroup := apiGroup.Group("/evaluate", protected)
	evaluateGroup.Post("/", assessmentHandler.Evaluate)
	evaluateGroup.Post("/preview", assessmentHandler.Preview)

	// Graceful shutdown on SIGINT/SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		appLogger.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			appLogger.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	appLogger.Info("Starting server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		appLogger.Fatal("Server stopped unexpectedly", zap.Error(err))
	}

	appLogger.Info("Server exited")
}

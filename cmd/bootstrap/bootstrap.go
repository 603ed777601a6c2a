package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medpractice-backend/config"
	"medpractice-backend/internal/delivery/graphql"
	deliveryHttp "medpractice-backend/internal/delivery/http"
	"medpractice-backend/internal/delivery/http/handler"
	"medpractice-backend/internal/delivery/http/middleware"
	"medpractice-backend/internal/infrastructure/cache"
	"medpractice-backend/internal/infrastructure/database"
	"medpractice-backend/internal/repository"
	"medpractice-backend/internal/service"
	"medpractice-backend/internal/usecase"
	"medpractice-backend/pkg/jwt"
	"medpractice-backend/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Apply schema migrations
	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server, err := initializeServer(cfg, db, redisClient)
	if err != nil {
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, error) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	queryBuilder := repository.NewQueryBuilder()
	physicianRepo := repository.NewPhysicianRepository(queryBuilder)
	practiceRepo := repository.NewPracticeRepository()
	patientRepo := repository.NewPatientRepository()
	fileRepo := repository.NewPhysicianFileRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize mail service
	var mailService service.MailService
	if cfg.Mail.Host != "" {
		mailService = service.NewSMTPMailService(cfg.Mail, log)
	} else {
		mailService = service.NewNoopMailService()
		log.Info("No mail host configured, mail notifications disabled")
	}

	// Initialize usecases
	readUsecase := usecase.NewPhysicianReadUsecase(db, log, physicianRepo, fileRepo)
	writeUsecase := usecase.NewPhysicianWriteUsecase(db, log, physicianRepo, practiceRepo, patientRepo, fileRepo, mailService)

	// Initialize handlers
	physicianHandler := handler.NewPhysicianHandler(readUsecase)
	physicianWriteHandler := handler.NewPhysicianWriteHandler(writeUsecase, customValidator)

	graphqlResolver := graphql.NewResolver(readUsecase, writeUsecase, customValidator)
	graphqlHandler, err := graphql.NewHandler(graphqlResolver, log)
	if err != nil {
		return nil, err
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()
	requestIDMiddleware := middleware.NewRequestIDMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(physicianHandler, physicianWriteHandler, graphqlHandler, authMiddleware, corsMiddleware, requestIDMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}

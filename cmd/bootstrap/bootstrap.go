package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-management/config"
	deliveryHttp "hospital-management/internal/delivery/http"
	"hospital-management/internal/delivery/http/handler"
	"hospital-management/internal/delivery/http/middleware"
	"hospital-management/internal/infrastructure/cache"
	"hospital-management/internal/infrastructure/database"
	"hospital-management/internal/repository"
	"hospital-management/internal/service"
	"hospital-management/internal/usecase"
	"hospital-management/pkg/jwt"
	"hospital-management/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	log := setupLogger(cfg.App)
	app.Log = log
	log.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, log, cfg.App.IsDevelopment())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Info("Database connected successfully")

	if cfg.DB.AutoMigrate {
		if err := database.RunMigrations(db); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	log.Info("Redis connected successfully")

	// Initialize all layers
	server := initializeServer(cfg, log, db, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the standard logrus logger: text output in
// development, JSON everywhere else.
func setupLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetOutput(os.Stdout)
	if cfg.IsDevelopment() {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("Unknown log level %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	accountRepo := repository.NewAccountRepository()
	profileRepo := repository.NewProfileRepository()
	departmentRepo := repository.NewDepartmentRepository()
	specializationRepo := repository.NewSpecializationRepository()
	doctorRepo := repository.NewDoctorRepository()
	availabilityRepo := repository.NewAvailabilityRepository()
	patientRepo := repository.NewPatientRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(db, log, auditLogRepo)
	sessionStore := service.NewRedisSessionStore(redisClient, log)

	// Initialize usecases
	registrationUsecase := usecase.NewRegistrationUsecase(db, log, accountRepo, profileRepo, departmentRepo, specializationRepo, doctorRepo, patientRepo, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, accountRepo, profileRepo, departmentRepo, doctorRepo, patientRepo, appointmentRepo, auditService)
	directoryUsecase := usecase.NewDirectoryUsecase(db, log, departmentRepo, doctorRepo, availabilityRepo, auditService)
	sessionUsecase := usecase.NewSessionUsecase(db, log, accountRepo, profileRepo, jwtService, sessionStore, auditService)
	dashboardUsecase := usecase.NewDashboardUsecase(db, log, profileRepo, doctorRepo, patientRepo, availabilityRepo, appointmentUsecase)

	// Initialize handlers
	pageHandler := handler.NewPageHandler(cfg.App.Name, cfg.Clinic)
	registrationHandler := handler.NewRegistrationHandler(registrationUsecase, directoryUsecase, customValidator)
	sessionHandler := handler.NewSessionHandler(sessionUsecase, customValidator, log, cfg.App.CookieSecure)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	directoryHandler := handler.NewDirectoryHandler(directoryUsecase, customValidator)
	dashboardHandler := handler.NewDashboardHandler(dashboardUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, sessionStore, log)
	rateLimiter := middleware.NewRateLimiter(redisClient, log, middleware.RateLimitConfig{
		Limit:          cfg.RateLimit.LoginLimit,
		Window:         cfg.RateLimit.LoginWindow,
		TrustedProxies: cfg.RateLimit.TrustedProxies,
	})
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)

	// Initialize router
	router := deliveryHttp.NewRouter(
		pageHandler,
		registrationHandler,
		sessionHandler,
		appointmentHandler,
		directoryHandler,
		dashboardHandler,
		authMiddleware,
		rateLimiter,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run serves HTTP until SIGINT or SIGTERM, then drains in-flight requests.
func (app *App) Run() {
	go func() {
		app.Log.WithFields(logrus.Fields{
			"addr": app.Server.Addr,
			"env":  app.Config.App.Env,
		}).Infof("%s listening", app.Config.App.Name)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	app.Log.WithField("signal", sig.String()).Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close releases the database pool and the Redis client. Safe to call on a
// partially initialized App.
func (app *App) Close() {
	if app.DB != nil {
		if sqlDB, err := app.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				app.logger().Warnf("Failed to close database: %v", err)
			}
		}
	}

	if app.RedisClient != nil {
		if err := app.RedisClient.Close(); err != nil {
			app.logger().Warnf("Failed to close Redis client: %v", err)
		}
	}
}

func (app *App) logger() *logrus.Logger {
	if app.Log != nil {
		return app.Log
	}
	return logrus.StandardLogger()
}

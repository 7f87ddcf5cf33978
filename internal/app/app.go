package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"whatyaneed_backend/database"
	"whatyaneed_backend/internal/auth"
	"whatyaneed_backend/internal/config"
	"whatyaneed_backend/internal/email"
	"whatyaneed_backend/internal/handlers"
	"whatyaneed_backend/internal/logger"
	"whatyaneed_backend/internal/metrics"
	"whatyaneed_backend/internal/middleware"
	"whatyaneed_backend/internal/models"
	"whatyaneed_backend/internal/repositories"
	"whatyaneed_backend/internal/routes"
	"whatyaneed_backend/internal/services"
	"whatyaneed_backend/internal/session"
	"whatyaneed_backend/internal/validator"
	"whatyaneed_backend/internal/workers"
	"whatyaneed_backend/pkg/apperrors"
	"whatyaneed_backend/web"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const metricsNamespace = "whatyaneed"

// Deps - внешние зависимости роутера. Notifier и Metrics могут быть nil.
type Deps struct {
	DB       *gorm.DB
	Sessions session.Store
	Notifier *email.Notifier
	Metrics  *metrics.Metrics
}

func Run() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.Server.Env)
	apperrors.SetDebug(cfg.IsDevelopment())
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			logger.Fatal("Failed to migrate database", "error", err)
		}
		logger.Info("Database migrated")
	}

	if err := seedFirstAdmin(db, cfg); err != nil {
		// без админа сервер не запускаем: значит, проблемы с БД
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New(metricsNamespace)

	store, closeStore, err := newSessionStore(ctx, cfg, m)
	if err != nil {
		logger.Fatal("Failed to initialize session store", "error", err)
	}
	defer closeStore()

	notifier, err := newNotifier(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize email provider", "error", err)
	}

	ginRouter := SetupRouter(cfg, Deps{DB: db, Sessions: store, Notifier: notifier, Metrics: m})

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
}

// SetupRouter собирает gin.Engine со всеми сервисами и маршрутами
func SetupRouter(cfg *config.Config, deps Deps) *gin.Engine {
	switch cfg.Server.Env {
	case "development":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	sessions := session.NewManager(deps.Sessions, session.Options{
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.SessionTTL(),
		Secure:     cfg.Session.Secure,
	})

	// 1. Сервисы
	serviceContainer := services.NewServiceContainer(deps.Notifier, deps.Metrics)

	// 2. Хэндлеры
	appHandlers := initializeHandlers(serviceContainer, sessions)

	// 3. Gin
	ginRouter := initializeGinRouter(cfg, deps, sessions)

	// 4. Маршруты
	var client http.FileSystem
	if cfg.Client.Serve {
		client = web.Client()
	}
	routes.RegisterRoutes(ginRouter, appHandlers, deps.Metrics, client)

	return ginRouter
}

func initializeHandlers(services *services.ServiceContainer, sessions *session.Manager) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		HealthHandler:       handlers.NewHealthHandler(),
		AuthHandler:         handlers.NewAuthHandler(baseHandler, services.AuthService, sessions),
		UserHandler:         handlers.NewUserHandler(baseHandler, services.UserService, services.AuthService, sessions),
		RequestHandler:      handlers.NewRequestHandler(baseHandler, services.RequestService),
		OfferHandler:        handlers.NewOfferHandler(baseHandler, services.OfferService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, services.NotificationService),
	}
}

func initializeGinRouter(cfg *config.Config, deps Deps, sessions *session.Manager) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
	}
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.DBMiddleware(deps.DB))
	router.Use(middleware.SessionMiddleware(sessions))
	return router
}

// newSessionStore выбирает хранилище сессий по конфигу. Для memory-хранилища
// запускается воркер очистки, который останавливается вместе с ctx.
func newSessionStore(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (session.Store, func(), error) {
	switch cfg.Session.Store {
	case "redis":
		store, err := session.NewRedisStoreFromURL(cfg.Session.RedisURL, cfg.Session.KeyPrefix)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Session store initialized", "type", "redis")
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Warn("Failed to close redis session store", "error", err)
			}
		}, nil
	default:
		store := session.NewMemoryStore()
		workers.NewSessionWorker(store, cfg.SweepInterval(), m).Start(ctx)
		logger.Info("Session store initialized", "type", "memory", "sweep_interval", cfg.SweepInterval())
		return store, func() {}, nil
	}
}

// newNotifier - почтовые копии уведомлений включаются только явно
func newNotifier(cfg *config.Config) (*email.Notifier, error) {
	if !cfg.Email.Enabled {
		logger.Info("Email notifications disabled")
		return nil, nil
	}

	provider, err := email.NewSMTPProvider(email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Email notifications enabled", "smtp_host", cfg.Email.SMTPHost)
	return email.NewNotifier(provider), nil
}

// seedFirstAdmin создает администратора из конфига, если его еще нет.
// Повторный запуск ничего не меняет.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := auth.NormalizeEmail(cfg.FirstAdmin.Email)
	adminPassword := cfg.FirstAdmin.Password

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	users := repositories.NewUserRepository()
	admins, err := users.CountByRole(db, models.UserRoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to count admin users: %w", err)
	}
	if admins > 0 {
		logger.Info("Admin user already exists. Skipping creation.", "admins", admins)
		return nil
	}

	if err := auth.ValidatePassword(adminPassword); err != nil {
		return fmt.Errorf("first admin password: %w", err)
	}
	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	name := cfg.FirstAdmin.Name
	if name == "" {
		name = "Administrator"
	}
	admin := &models.User{
		Name:         name,
		Email:        adminEmail,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		Verified:     true,
	}
	if err := users.Create(db, admin); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			// email занят обычным пользователем или другой экземпляр успел раньше
			logger.Warn("First admin email is already registered. Skipping creation.", "email", adminEmail)
			return nil
		}
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("Created first admin user", "email", adminEmail)
	return nil
}

package main

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

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/yourusername/quiz-api/internal/config"
	"github.com/yourusername/quiz-api/internal/handler"
	"github.com/yourusername/quiz-api/internal/middleware"
	pgRepo "github.com/yourusername/quiz-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/quiz-api/internal/repository/redis"
	"github.com/yourusername/quiz-api/internal/service"
	"github.com/yourusername/quiz-api/pkg/auth"
	"github.com/yourusername/quiz-api/pkg/database"
)

func main() {
	// .env необязателен: в Docker переменные приходят из окружения
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		fatal("Failed to load config", err)
	}

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		}); err != nil {
			log.Printf("Warning: Sentry init failed: %v", err)
		} else {
			log.Println("Sentry initialized")
		}
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), cfg.Database.LogLevel)
	if err != nil {
		fatal("Failed to connect to database", err)
	}

	// Применяем миграции
	if err := database.MigrateDB(db, cfg.Database.MigrationsURL); err != nil {
		fatal("Failed to migrate database", err)
	}

	// Redis хранит счетчики rate limiter и отозванные токены
	redisClient, err := database.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		fatal("Failed to connect to Redis", err)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	profileRepo := pgRepo.NewProfileRepo(db)
	categoryRepo := pgRepo.NewCategoryRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	choiceRepo := pgRepo.NewChoiceRepo(db)
	resultRepo := pgRepo.NewResultRepo(db)

	tokenStore, err := redisRepo.NewTokenStore(redisClient)
	if err != nil {
		fatal("Failed to initialize TokenStore", err)
	}

	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs, cfg.JWT.Issuer)
	if err != nil {
		fatal("Failed to initialize JWTService", err)
	}

	emailService, err := service.NewEmailService(cfg.Email.ResendAPIKey, cfg.Email.From)
	if err != nil {
		fatal("Failed to initialize EmailService", err)
	}

	// Инициализируем сервисы
	authService, err := service.NewAuthService(userRepo, tokenStore, jwtService, emailService, cfg.Bootstrap.DefaultCategories)
	if err != nil {
		fatal("Failed to initialize AuthService", err)
	}
	guard := service.NewOwnershipGuard(quizRepo, questionRepo, choiceRepo)
	quizService := service.NewQuizService(quizRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	questionService := service.NewQuestionService(questionRepo, guard)
	choiceService := service.NewChoiceService(choiceRepo, guard)
	resultService := service.NewResultService(resultRepo, quizRepo)
	profileService := service.NewProfileService(profileRepo, userRepo)

	if err := handler.RegisterValidators(); err != nil {
		fatal("Failed to register validators", err)
	}

	sqlDB, err := database.GetSQLDB(db)
	if err != nil {
		fatal("Failed to get sql.DB", err)
	}

	handlers := handler.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Quiz:     handler.NewQuizHandler(quizService),
		Category: handler.NewCategoryHandler(categoryService),
		Question: handler.NewQuestionHandler(questionService),
		Choice:   handler.NewChoiceHandler(choiceService),
		Result:   handler.NewResultHandler(resultService),
		Profile:  handler.NewProfileHandler(profileService),
		Health: handler.NewHealthHandler(map[string]handler.Pinger{
			"database": handler.PingFunc(sqlDB.PingContext),
			"redis": handler.PingFunc(func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			}),
		}),
	}

	// В production не доверяем прокси-заголовкам, в разработке доверяем localhost
	var trustedProxies []string
	if gin.Mode() != gin.ReleaseMode {
		trustedProxies = []string{"127.0.0.1", "::1"}
	}

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiter(redisClient)
	}

	router := handler.NewRouter(handlers, handler.RouterConfig{
		Auth:           middleware.NewAuthMiddleware(authService),
		RateLimiter:    rateLimiter,
		AuthRateLimit:  middleware.AuthRateLimitConfig(cfg.RateLimit.MaxRequests, cfg.RateLimit.WindowSec),
		APIRateLimit:   middleware.APIRateLimitConfig(cfg.RateLimit.APIMaxRequests),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		TrustedProxies: trustedProxies,
	})

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		fatal("Server forced to shutdown", err)
	}

	// Письма, начатые до остановки, дописываем до закрытия соединений
	authService.WaitPendingEmails()

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}

	sentry.Flush(sentryFlushTimeout)
	log.Println("Server exited properly")
}

const sentryFlushTimeout = 2 * time.Second

// exit подменяется в тестах
var exit = os.Exit

// fatal логирует ошибку, отправляет ее в Sentry и завершает процесс.
// Отложенные вызовы при os.Exit не выполняются, поэтому буфер Sentry сбрасывается здесь.
func fatal(msg string, err error) {
	log.Printf("%s: %v", msg, err)
	sentry.CaptureException(fmt.Errorf("%s: %w", msg, err))
	sentry.Flush(sentryFlushTimeout)
	exit(1)
}

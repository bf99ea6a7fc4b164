package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// Config хранит все настройки приложения
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Bootstrap BootstrapConfig `mapstructure:"bootstrap"`
	Email     EmailConfig     `mapstructure:"email"`
	Sentry    SentryConfig    `mapstructure:"sentry"`
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	ReadTimeout    int      `mapstructure:"read_timeout"`
	WriteTimeout   int      `mapstructure:"write_timeout"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host          string `mapstructure:"host"`
	Port          string `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	DBName        string `mapstructure:"dbname"`
	SSLMode       string `mapstructure:"sslmode"`
	LogLevel      string `mapstructure:"log_level"`
	MigrationsURL string `mapstructure:"migrations_url"`
}

// RedisConfig содержит настройки подключения к одиночному узлу Redis
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MaxRetries: количество повторов команды (-1 - без повторов)
	MaxRetries int `mapstructure:"max_retries"`

	// MinRetryBackoff/MaxRetryBackoff: интервалы между повторами (в миллисекундах)
	MinRetryBackoff int `mapstructure:"min_retry_backoff"`
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"`
}

// JWTConfig содержит настройки JWT
type JWTConfig struct {
	Secret        string `mapstructure:"secret"`
	ExpirationHrs int    `mapstructure:"expiration_hrs"`
	Issuer        string `mapstructure:"issuer"`
}

// RateLimitConfig содержит лимиты для login/register и общий лимит API на IP
type RateLimitConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	MaxRequests    int  `mapstructure:"max_requests"`
	WindowSec      int  `mapstructure:"window_sec"`
	APIMaxRequests int  `mapstructure:"api_max_requests"`
}

// BootstrapConfig содержит данные, создаваемые при регистрации пользователя
type BootstrapConfig struct {
	DefaultCategories []entity.DefaultCategory `mapstructure:"default_categories"`
}

// EmailConfig содержит настройки отправки писем. Пустой ключ отключает отправку.
type EmailConfig struct {
	ResendAPIKey string `mapstructure:"resend_api_key"`
	From         string `mapstructure:"from"`
}

// SentryConfig содержит настройки отправки ошибок. Пустой DSN отключает Sentry.
type SentryConfig struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
}

// DefaultCategories - категории, которые получает каждый новый пользователь
func DefaultCategories() []entity.DefaultCategory {
	return []entity.DefaultCategory{
		{Name: "Mathématiques", Description: "Catégorie pour les quiz de mathématiques"},
		{Name: "Physique", Description: "Catégorie pour les quiz de physique"},
		{Name: "Chimie", Description: "Catégorie pour les quiz de chimie"},
	}
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// PostgresURL формирует URL подключения (для golang-migrate и lib/pq)
func (d *DatabaseConfig) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

func setDefaults(vip *viper.Viper) {
	vip.SetDefault("server.port", "8080")
	vip.SetDefault("server.read_timeout", 15)
	vip.SetDefault("server.write_timeout", 15)
	vip.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("database.log_level", "warn")
	vip.SetDefault("redis.addr", "localhost:6379")
	vip.SetDefault("jwt.expiration_hrs", 24)
	vip.SetDefault("jwt.issuer", "quiz-api")
	vip.SetDefault("rate_limit.enabled", true)
	vip.SetDefault("rate_limit.max_requests", 5)
	vip.SetDefault("rate_limit.window_sec", 60)
	vip.SetDefault("rate_limit.api_max_requests", 300)
	vip.SetDefault("email.from", "Quiz <no-reply@quiz.local>")
}

// Load загружает конфигурацию из файла и переменных окружения
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Используем новый экземпляр Viper, чтобы избежать глобального состояния
	setDefaults(vip)

	// Привязываем переменные окружения ЯВНО
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")
	vip.BindEnv("database.log_level", "DATABASE_LOG_LEVEL")
	vip.BindEnv("database.migrations_url", "DATABASE_MIGRATIONS_URL")

	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")

	vip.BindEnv("jwt.secret", "JWT_SECRET")
	vip.BindEnv("jwt.expiration_hrs", "JWT_EXPIRATION_HRS")

	vip.BindEnv("server.port", "SERVER_PORT")
	vip.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	vip.BindEnv("rate_limit.api_max_requests", "RATE_LIMIT_API_MAX_REQUESTS")

	vip.BindEnv("email.resend_api_key", "RESEND_API_KEY")
	vip.BindEnv("email.from", "EMAIL_FROM")
	vip.BindEnv("sentry.dsn", "SENTRY_DSN")
	vip.BindEnv("sentry.environment", "SENTRY_ENVIRONMENT")

	if configPath != "" {
		vip.SetConfigFile(configPath)
		// Файла может не быть: тогда работают переменные окружения и умолчания
		if err := vip.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
				log.Printf("[Config] Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if !vip.IsSet("bootstrap.default_categories") {
		cfg.Bootstrap.DefaultCategories = DefaultCategories()
	}

	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Database Name: %s", cfg.Database.DBName)
		log.Printf("Redis Addr: %s", cfg.Redis.Addr)
		log.Printf("JWT Expiration Hours: %d", cfg.JWT.ExpirationHrs)
		log.Printf("Default categories: %d", len(cfg.Bootstrap.DefaultCategories))
		log.Printf("Email enabled: %t, Sentry enabled: %t", cfg.Email.ResendAPIKey != "", cfg.Sentry.DSN != "")
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("-----------------------------------------")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("jwt secret must be at least 32 characters (check JWT_SECRET env var)")
	}
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return fmt.Errorf("database configuration (host, dbname, user) is incomplete in config (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	for i, d := range c.Bootstrap.DefaultCategories {
		if strings.TrimSpace(d.Name) == "" {
			return fmt.Errorf("bootstrap.default_categories[%d].name is required", i)
		}
	}
	if c.RateLimit.Enabled && (c.RateLimit.MaxRequests <= 0 || c.RateLimit.WindowSec <= 0 || c.RateLimit.APIMaxRequests <= 0) {
		return fmt.Errorf("rate_limit.max_requests, rate_limit.api_max_requests and rate_limit.window_sec must be positive")
	}
	return nil
}

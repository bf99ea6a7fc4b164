package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/yourusername/quiz-api/internal/config"
)

// redisPingTimeout ограничивает проверку соединения при старте
const redisPingTimeout = 5 * time.Second

// RedisOptions переводит конфигурацию в опции go-redis.
// Нулевые значения повторов оставляют значения библиотеки по умолчанию.
func RedisOptions(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis configuration error: addr must be provided")
	}

	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.MaxRetries != 0 {
		opts.MaxRetries = cfg.MaxRetries
	}
	if cfg.MinRetryBackoff != 0 {
		opts.MinRetryBackoff = time.Duration(cfg.MinRetryBackoff) * time.Millisecond
	}
	if cfg.MaxRetryBackoff != 0 {
		opts.MaxRetryBackoff = time.Duration(cfg.MaxRetryBackoff) * time.Millisecond
	}
	return opts, nil
}

// NewRedisClient подключается к Redis, где хранятся счетчики rate limiter
// и отозванные токены. Возвращает ошибку, если сервер не отвечает на PING.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (redis.UniversalClient, error) {
	opts, err := RedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr, err)
	}

	log.Printf("[Redis] Подключение к %s (db %d) установлено", cfg.Addr, cfg.DB)
	return client, nil
}

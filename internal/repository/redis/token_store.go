package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/yourusername/quiz-api/internal/domain/repository"
)

const revokedTokenPrefix = "auth:revoked:"

// TokenStore реализует repository.TokenRevocationStore на Redis.
// Ключ живет не дольше оставшегося срока действия токена.
type TokenStore struct {
	client redis.UniversalClient
}

// NewTokenStore создает хранилище отозванных токенов и возвращает ошибку при проблемах
func NewTokenStore(client redis.UniversalClient) (*TokenStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil for TokenStore")
	}
	return &TokenStore{client: client}, nil
}

var _ repository.TokenRevocationStore = (*TokenStore)(nil)

// Revoke помечает jti отозванным на ttl
func (s *TokenStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// токен уже истек, помечать нечего
		return nil
	}
	return s.client.Set(ctx, revokedTokenPrefix+jti, 1, ttl).Err()
}

// IsRevoked проверяет, был ли jti отозван
func (s *TokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedTokenPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

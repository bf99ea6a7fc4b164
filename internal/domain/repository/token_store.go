package repository

import (
	"context"
	"time"
)

// TokenRevocationStore хранит отозванные идентификаторы токенов (jti) до их истечения
type TokenRevocationStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Package redis хранит отозванные JWT в Redis с TTL равным остатку жизни токена
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"
)

const keyPrefix = "roleplay:revoked:"

// TokenDenylist реализует repository.TokenDenylist поверх Redis
type TokenDenylist struct {
	client *goredis.Client
}

// NewTokenDenylist создает новый экземпляр TokenDenylist
func NewTokenDenylist(client *goredis.Client) *TokenDenylist {
	return &TokenDenylist{client: client}
}

// NewClient создает клиента Redis и проверяет подключение
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// Revoke помечает токен отозванным до expiresAt
func (d *TokenDenylist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Токен уже истек, middleware его и так отклонит
		return nil
	}
	return d.client.Set(ctx, keyPrefix+jti, 1, ttl).Err()
}

// IsRevoked проверяет, отозван ли токен
func (d *TokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := d.client.Get(ctx, keyPrefix+jti).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	return false, err
}

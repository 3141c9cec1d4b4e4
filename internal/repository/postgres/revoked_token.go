package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TokenDenylist реализует repository.TokenDenylist на таблице revoked_tokens.
// Используется когда Redis не настроен.
type TokenDenylist struct {
	db *pgxpool.Pool
}

// NewTokenDenylist создает новый экземпляр TokenDenylist
func NewTokenDenylist(db *pgxpool.Pool) *TokenDenylist {
	return &TokenDenylist{db: db}
}

// Revoke помечает токен отозванным до expiresAt и попутно чистит истекшие записи
func (d *TokenDenylist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	query := `
		INSERT INTO revoked_tokens (jti, expires_at)
		VALUES ($1, $2)
		ON CONFLICT (jti) DO NOTHING
	`
	if _, err := d.db.Exec(ctx, query, jti, expiresAt); err != nil {
		return err
	}

	_, err := d.db.Exec(ctx, `DELETE FROM revoked_tokens WHERE expires_at < NOW()`)
	return err
}

// IsRevoked проверяет, отозван ли токен
func (d *TokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM revoked_tokens WHERE jti = $1 AND expires_at >= NOW())`

	var revoked bool
	if err := d.db.QueryRow(ctx, query, jti).Scan(&revoked); err != nil {
		return false, err
	}

	return revoked, nil
}

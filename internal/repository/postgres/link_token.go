package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roleplay/roleplay-api/internal/domain"
)

// LinkTokenRepository реализует repository.LinkTokenRepository для PostgreSQL
type LinkTokenRepository struct {
	db *pgxpool.Pool
}

// NewLinkTokenRepository создает новый экземпляр LinkTokenRepository
func NewLinkTokenRepository(db *pgxpool.Pool) *LinkTokenRepository {
	return &LinkTokenRepository{db: db}
}

// Create сохраняет новый токен пользователя
func (r *LinkTokenRepository) Create(ctx context.Context, userID int64, token string) (*domain.LinkToken, error) {
	query := `
		INSERT INTO link_tokens (user_id, token)
		VALUES ($1, $2)
		RETURNING id, user_id, token, created_at
	`

	var t domain.LinkToken
	err := r.db.QueryRow(ctx, query, userID, token).Scan(&t.ID, &t.UserID, &t.Token, &t.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	return &t, nil
}

// GetByToken получает токен по значению
func (r *LinkTokenRepository) GetByToken(ctx context.Context, token string) (*domain.LinkToken, error) {
	query := `SELECT id, user_id, token, created_at FROM link_tokens WHERE token = $1`

	var t domain.LinkToken
	err := r.db.QueryRow(ctx, query, token).Scan(&t.ID, &t.UserID, &t.Token, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, err
	}

	return &t, nil
}

// DeleteByUser удаляет все токены пользователя
func (r *LinkTokenRepository) DeleteByUser(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM link_tokens WHERE user_id = $1`, userID)
	return err
}

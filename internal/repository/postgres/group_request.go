package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roleplay/roleplay-api/internal/domain"
)

// GroupRequestRepository реализует repository.GroupRequestRepository для PostgreSQL
type GroupRequestRepository struct {
	db *pgxpool.Pool
}

// NewGroupRequestRepository создает новый экземпляр GroupRequestRepository
func NewGroupRequestRepository(db *pgxpool.Pool) *GroupRequestRepository {
	return &GroupRequestRepository{db: db}
}

const groupRequestColumns = `id, group_id, user_id, status, created_at, updated_at`

func scanGroupRequest(row pgx.Row) (*domain.GroupRequest, error) {
	var req domain.GroupRequest
	err := row.Scan(
		&req.ID,
		&req.GroupID,
		&req.UserID,
		&req.Status,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGroupRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

// Create создает заявку в статусе PENDING
func (r *GroupRequestRepository) Create(ctx context.Context, groupID, userID int64) (*domain.GroupRequest, error) {
	query := `
		INSERT INTO group_requests (group_id, user_id, status)
		VALUES ($1, $2, $3)
		RETURNING ` + groupRequestColumns

	req, err := scanGroupRequest(r.db.QueryRow(ctx, query, groupID, userID, domain.GroupRequestPending))
	if err != nil {
		if _, ok := isUniqueViolation(err); ok {
			return nil, domain.ErrGroupRequestExists
		}
		if isForeignKeyViolation(err) {
			return nil, domain.ErrGroupNotFound
		}
		return nil, err
	}

	return req, nil
}

// GetByGroupAndUser получает заявку пользователя в группу
func (r *GroupRequestRepository) GetByGroupAndUser(ctx context.Context, groupID, userID int64) (*domain.GroupRequest, error) {
	query := `SELECT ` + groupRequestColumns + ` FROM group_requests WHERE group_id = $1 AND user_id = $2`
	return scanGroupRequest(r.db.QueryRow(ctx, query, groupID, userID))
}

// GetByIDAndGroup получает заявку по ID только если она относится к группе
func (r *GroupRequestRepository) GetByIDAndGroup(ctx context.Context, requestID, groupID int64) (*domain.GroupRequest, error) {
	query := `SELECT ` + groupRequestColumns + ` FROM group_requests WHERE id = $1 AND group_id = $2`
	return scanGroupRequest(r.db.QueryRow(ctx, query, requestID, groupID))
}

// ListPendingByMaster возвращает ожидающие заявки в группы мастера
func (r *GroupRequestRepository) ListPendingByMaster(ctx context.Context, masterID int64) ([]*domain.GroupRequestListItem, error) {
	query := `
		SELECT gr.id, gr.group_id, gr.user_id, gr.status, g.name, g.master, u.username
		FROM group_requests gr
		INNER JOIN groups g ON g.id = gr.group_id
		INNER JOIN users u ON u.id = gr.user_id
		WHERE g.master = $1 AND gr.status = $2
		ORDER BY gr.created_at, gr.id
	`

	rows, err := r.db.Query(ctx, query, masterID, domain.GroupRequestPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*domain.GroupRequestListItem{}
	for rows.Next() {
		var item domain.GroupRequestListItem
		if err := rows.Scan(
			&item.ID,
			&item.GroupID,
			&item.UserID,
			&item.Status,
			&item.Group.Name,
			&item.Group.Master,
			&item.User.Username,
		); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

// Accept переводит заявку в ACCEPTED и добавляет пользователя в игроки (в одной транзакции)
func (r *GroupRequestRepository) Accept(ctx context.Context, requestID int64) (*domain.GroupRequest, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx) // после Commit ошибка ожидаема
	}()

	query := `
		UPDATE group_requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + groupRequestColumns

	req, err := scanGroupRequest(tx.QueryRow(ctx, query, domain.GroupRequestAccepted, requestID))
	if err != nil {
		return nil, err
	}

	// Повторное принятие не должно дублировать игрока
	playerQuery := `
		INSERT INTO groups_users (group_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (group_id, user_id) DO NOTHING
	`
	if _, err := tx.Exec(ctx, playerQuery, req.GroupID, req.UserID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return req, nil
}

// Delete удаляет заявку
func (r *GroupRequestRepository) Delete(ctx context.Context, requestID int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM group_requests WHERE id = $1`, requestID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrGroupRequestNotFound
	}

	return nil
}

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roleplay/roleplay-api/internal/domain"
)

// GroupRepository реализует repository.GroupRepository для PostgreSQL
type GroupRepository struct {
	db *pgxpool.Pool
}

// NewGroupRepository создает новый экземпляр GroupRepository
func NewGroupRepository(db *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{db: db}
}

// Create создает группу и добавляет мастера первым игроком (в одной транзакции)
func (r *GroupRepository) Create(ctx context.Context, group *domain.Group) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx) // после Commit ошибка ожидаема
	}()

	query := `
		INSERT INTO groups (name, description, schedule, location, chronicity, master)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err = tx.QueryRow(ctx, query,
		group.Name, group.Description, group.Schedule, group.Location, group.Chronicity, group.Master,
	).Scan(&group.ID, &group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return err
	}

	playerQuery := `INSERT INTO groups_users (group_id, user_id) VALUES ($1, $2)`
	if _, err := tx.Exec(ctx, playerQuery, group.ID, group.Master); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetByID получает группу по ID вместе с игроками
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	query := `
		SELECT id, name, description, schedule, location, chronicity, master, created_at, updated_at
		FROM groups
		WHERE id = $1
	`

	var group domain.Group
	err := r.db.QueryRow(ctx, query, id).Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.Schedule,
		&group.Location,
		&group.Chronicity,
		&group.Master,
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGroupNotFound
		}
		return nil, err
	}

	players, err := r.players(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	group.Players = players[id]
	if group.Players == nil {
		group.Players = []domain.UserSummary{}
	}

	return &group, nil
}

// List возвращает все группы с игроками и мастером
func (r *GroupRepository) List(ctx context.Context) ([]*domain.Group, error) {
	query := `
		SELECT g.id, g.name, g.description, g.schedule, g.location, g.chronicity, g.master,
		       g.created_at, g.updated_at,
		       u.id, u.username, u.email, u.avatar
		FROM groups g
		INNER JOIN users u ON u.id = g.master
		ORDER BY g.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []*domain.Group{}
	var ids []int64
	for rows.Next() {
		var g domain.Group
		var master domain.UserSummary
		if err := rows.Scan(
			&g.ID, &g.Name, &g.Description, &g.Schedule, &g.Location, &g.Chronicity, &g.Master,
			&g.CreatedAt, &g.UpdatedAt,
			&master.ID, &master.Username, &master.Email, &master.Avatar,
		); err != nil {
			return nil, err
		}
		g.MasterUser = &master
		groups = append(groups, &g)
		ids = append(ids, g.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return groups, nil
	}

	players, err := r.players(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		g.Players = players[g.ID]
		if g.Players == nil {
			g.Players = []domain.UserSummary{}
		}
	}

	return groups, nil
}

// players загружает игроков для набора групп одним запросом
func (r *GroupRepository) players(ctx context.Context, groupIDs []int64) (map[int64][]domain.UserSummary, error) {
	query := `
		SELECT gu.group_id, u.id, u.username, u.email, u.avatar
		FROM groups_users gu
		INNER JOIN users u ON u.id = gu.user_id
		WHERE gu.group_id = ANY($1)
		ORDER BY gu.created_at, u.id
	`

	rows, err := r.db.Query(ctx, query, groupIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64][]domain.UserSummary, len(groupIDs))
	for rows.Next() {
		var groupID int64
		var p domain.UserSummary
		if err := rows.Scan(&groupID, &p.ID, &p.Username, &p.Email, &p.Avatar); err != nil {
			return nil, err
		}
		result[groupID] = append(result[groupID], p)
	}

	return result, rows.Err()
}

// Update сохраняет описательные поля группы
func (r *GroupRepository) Update(ctx context.Context, group *domain.Group) error {
	query := `
		UPDATE groups
		SET name = $1, description = $2, schedule = $3, location = $4, chronicity = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		group.Name, group.Description, group.Schedule, group.Location, group.Chronicity, group.ID,
	).Scan(&group.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrGroupNotFound
		}
		return err
	}

	return nil
}

// Delete удаляет группу (игроки и заявки удаляются каскадно)
func (r *GroupRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrGroupNotFound
	}

	return nil
}

// Exists проверяет существование группы
func (r *GroupRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM groups WHERE id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// IsPlayer проверяет, является ли пользователь игроком группы
func (r *GroupRepository) IsPlayer(ctx context.Context, groupID, userID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM groups_users WHERE group_id = $1 AND user_id = $2)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, groupID, userID).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// RemovePlayer удаляет игрока и его заявку в эту группу, чтобы он мог подать новую
func (r *GroupRepository) RemovePlayer(ctx context.Context, groupID, userID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx,
		`DELETE FROM groups_users WHERE group_id = $1 AND user_id = $2`, groupID, userID,
	); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM group_requests WHERE group_id = $1 AND user_id = $2`, groupID, userID,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

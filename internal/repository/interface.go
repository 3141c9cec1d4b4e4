package repository

import (
	"context"
	"time"

	"github.com/roleplay/roleplay-api/internal/domain"
)

// UserRepository определяет методы для работы с данными пользователей
type UserRepository interface {
	// Create создает нового пользователя и заполняет ID и временные метки
	Create(ctx context.Context, user *domain.User) error

	// Update сохраняет email, пароль и аватар пользователя
	Update(ctx context.Context, user *domain.User) error

	// GetByID получает пользователя по ID
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail получает пользователя по email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByUsername получает пользователя по username
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// GroupRepository определяет методы для работы с группами и их игроками
type GroupRepository interface {
	// Create создает группу и добавляет мастера первым игроком (в одной транзакции)
	Create(ctx context.Context, group *domain.Group) error

	// GetByID получает группу по ID вместе с игроками
	GetByID(ctx context.Context, id int64) (*domain.Group, error)

	// List возвращает все группы с игроками и мастером
	List(ctx context.Context) ([]*domain.Group, error)

	// Update сохраняет описательные поля группы
	Update(ctx context.Context, group *domain.Group) error

	// Delete удаляет группу (игроки и заявки удаляются каскадно)
	Delete(ctx context.Context, id int64) error

	// Exists проверяет существование группы
	Exists(ctx context.Context, id int64) (bool, error)

	// IsPlayer проверяет, является ли пользователь игроком группы
	IsPlayer(ctx context.Context, groupID, userID int64) (bool, error)

	// RemovePlayer удаляет игрока и его заявку в эту группу
	RemovePlayer(ctx context.Context, groupID, userID int64) error
}

// GroupRequestRepository определяет методы для работы с заявками на вступление
type GroupRequestRepository interface {
	// Create создает заявку в статусе PENDING
	Create(ctx context.Context, groupID, userID int64) (*domain.GroupRequest, error)

	// GetByGroupAndUser получает заявку пользователя в группу
	GetByGroupAndUser(ctx context.Context, groupID, userID int64) (*domain.GroupRequest, error)

	// GetByIDAndGroup получает заявку по ID только если она относится к группе
	GetByIDAndGroup(ctx context.Context, requestID, groupID int64) (*domain.GroupRequest, error)

	// ListPendingByMaster возвращает ожидающие заявки в группы мастера
	ListPendingByMaster(ctx context.Context, masterID int64) ([]*domain.GroupRequestListItem, error)

	// Accept переводит заявку в ACCEPTED и добавляет пользователя в игроки (в одной транзакции)
	Accept(ctx context.Context, requestID int64) (*domain.GroupRequest, error)

	// Delete удаляет заявку
	Delete(ctx context.Context, requestID int64) error
}

// LinkTokenRepository определяет методы для работы с токенами сброса пароля
type LinkTokenRepository interface {
	// Create сохраняет новый токен пользователя
	Create(ctx context.Context, userID int64, token string) (*domain.LinkToken, error)

	// GetByToken получает токен по значению
	GetByToken(ctx context.Context, token string) (*domain.LinkToken, error)

	// DeleteByUser удаляет все токены пользователя
	DeleteByUser(ctx context.Context, userID int64) error
}

// TokenDenylist хранит идентификаторы (jti) отозванных JWT до истечения их срока
type TokenDenylist interface {
	// Revoke помечает токен отозванным до expiresAt
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error

	// IsRevoked проверяет, отозван ли токен
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

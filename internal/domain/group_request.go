package domain

import "time"

// GroupRequestStatus представляет статус заявки на вступление в группу
type GroupRequestStatus string

// Возможные статусы заявки
const (
	GroupRequestPending  GroupRequestStatus = "PENDING"  // Ожидает решения мастера
	GroupRequestAccepted GroupRequestStatus = "ACCEPTED" // Принята, пользователь добавлен в игроки
)

// GroupRequest представляет заявку пользователя на вступление в группу
type GroupRequest struct {
	ID        int64              `json:"id"`
	GroupID   int64              `json:"groupId"`
	UserID    int64              `json:"userId"`
	Status    GroupRequestStatus `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// GroupRequestListItem представляет заявку в списке мастера вместе с краткой
// информацией о группе и заявителе
type GroupRequestListItem struct {
	ID      int64              `json:"id"`
	GroupID int64              `json:"groupId"`
	UserID  int64              `json:"userId"`
	Status  GroupRequestStatus `json:"status"`
	Group   GroupRequestGroup  `json:"group"`
	User    GroupRequestUser   `json:"user"`
}

// GroupRequestGroup содержит поля группы, нужные в списке заявок
type GroupRequestGroup struct {
	Name   string `json:"name"`
	Master int64  `json:"master"`
}

// GroupRequestUser содержит поля заявителя, нужные в списке заявок
type GroupRequestUser struct {
	Username string `json:"username"`
}

// IsPending возвращает true если заявка еще не рассмотрена
func (r *GroupRequest) IsPending() bool {
	return r.Status == GroupRequestPending
}

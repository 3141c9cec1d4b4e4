package domain

import "time"

// Group представляет игровую группу со своим мастером и игроками
type Group struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Schedule    string        `json:"schedule"`
	Location    string        `json:"location"`
	Chronicity  string        `json:"chronicity"`
	Master      int64         `json:"master"`
	MasterUser  *UserSummary  `json:"masterUser,omitempty"`
	Players     []UserSummary `json:"players"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// GroupUpdate содержит изменяемые поля группы (nil означает "не менять")
type GroupUpdate struct {
	Name        *string
	Description *string
	Schedule    *string
	Location    *string
	Chronicity  *string
}

// Apply применяет изменения к группе
func (u GroupUpdate) Apply(g *Group) {
	if u.Name != nil {
		g.Name = *u.Name
	}
	if u.Description != nil {
		g.Description = *u.Description
	}
	if u.Schedule != nil {
		g.Schedule = *u.Schedule
	}
	if u.Location != nil {
		g.Location = *u.Location
	}
	if u.Chronicity != nil {
		g.Chronicity = *u.Chronicity
	}
}

// IsMaster возвращает true если пользователь является мастером группы
func (g *Group) IsMaster(userID int64) bool {
	return g.Master == userID
}

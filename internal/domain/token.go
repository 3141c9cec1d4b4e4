package domain

import "time"

// LinkToken представляет одноразовый токен сброса пароля
type LinkToken struct {
	ID        int64
	UserID    int64
	Token     string
	CreatedAt time.Time
}

// IsExpired проверяет, прошло ли больше ttl с момента создания токена
func (t *LinkToken) IsExpired(now time.Time, ttl time.Duration) bool {
	return now.Sub(t.CreatedAt) > ttl
}

// AccessToken представляет выданный при логине JWT
type AccessToken struct {
	Type      string    `json:"type"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/roleplay/roleplay-api/internal/domain"
	"github.com/roleplay/roleplay-api/internal/service"
)

// ContextKey это кастомный тип для ключей контекста
type ContextKey string

const (
	// UserIDKey ключ контекста для ID пользователя
	UserIDKey ContextKey = "user_id"
	// ClaimsKey ключ контекста для claims токена (нужны для logout)
	ClaimsKey ContextKey = "claims"
)

type errorResponse struct {
	Code    string `json:"code"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func respondError(w http.ResponseWriter, r *http.Request, status int, code domain.ErrorCode, message string) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{
		Code:    string(code),
		Status:  status,
		Message: message,
	})
}

func unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	respondError(w, r, http.StatusUnauthorized, domain.CodeUnauthorized, message)
}

// AuthMiddleware создает middleware для валидации JWT токенов
func AuthMiddleware(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Получаем токен из заголовка Authorization
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, r, "missing authorization header")
				return
			}

			// Проверяем формат Bearer
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthorized(w, r, "invalid authorization header format")
				return
			}

			// Валидируем токен (подпись, срок действия, список отозванных)
			claims, err := authService.ValidateToken(r.Context(), parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrInvalidToken) {
					unauthorized(w, r, "invalid or expired token")
					return
				}
				// Недоступность хранилища отозванных токенов не должна выглядеть как 401
				slog.ErrorContext(r.Context(), "Failed to validate token", "error", err)
				respondError(w, r, http.StatusInternalServerError, domain.CodeInternal, "internal server error")
				return
			}

			setRequestUser(r.Context(), claims.UserID)

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, ClaimsKey, claims)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext извлекает ID пользователя из контекста
func GetUserIDFromContext(ctx context.Context) int64 {
	userID, ok := ctx.Value(UserIDKey).(int64)
	if !ok {
		return 0
	}
	return userID
}

// GetClaimsFromContext извлекает claims токена из контекста
func GetClaimsFromContext(ctx context.Context) *service.Claims {
	claims, ok := ctx.Value(ClaimsKey).(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

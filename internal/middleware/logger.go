package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// requestUserKey ключ контекста для слота с ID пользователя текущего запроса
const requestUserKey ContextKey = "request_user"

// requestUser заполняется AuthMiddleware во вложенном обработчике и читается RequestLogger после него
type requestUser struct {
	id int64
}

// setRequestUser записывает ID пользователя в слот, если RequestLogger его создал
func setRequestUser(ctx context.Context, userID int64) {
	if slot, ok := ctx.Value(requestUserKey).(*requestUser); ok {
		slot.id = userID
	}
}

// RequestLogger пишет одну строку лога на каждый запрос
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			slot := &requestUser{}
			r = r.WithContext(context.WithValue(r.Context(), requestUserKey, slot))

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"route", routePattern(r),
				"status", status,
				"duration", time.Since(start),
				"request_id", chimiddleware.GetReqID(r.Context()),
			}
			if slot.id != 0 {
				attrs = append(attrs, "user_id", slot.id)
			}

			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.Log(r.Context(), level, "HTTP request", attrs...)
		})
	}
}

// routePattern возвращает шаблон маршрута chi, чтобы не раздувать кардинальность метрик
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

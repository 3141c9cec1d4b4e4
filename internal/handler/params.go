package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/roleplay/roleplay-api/internal/domain"
)

// pathID извлекает положительный числовой параметр пути.
// Нечисловой идентификатор трактуется как несуществующий ресурс.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrNotFound
	}
	return id, nil
}

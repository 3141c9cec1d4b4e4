package handler

import (
	"net/http"

	"github.com/go-chi/render"
)

// emptyResponse сериализуется в {} для операций без тела результата
type emptyResponse struct{}

// RespondWithJSON отправляет JSON ответ с указанным статус кодом
func RespondWithJSON(w http.ResponseWriter, r *http.Request, statusCode int, data interface{}) {
	render.Status(r, statusCode)
	render.JSON(w, r, data)
}

// RespondWithEmpty отправляет 200 с пустым JSON объектом
func RespondWithEmpty(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, r, http.StatusOK, emptyResponse{})
}

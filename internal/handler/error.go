package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/roleplay/roleplay-api/internal/domain"
)

// ErrorResponse представляет тело ответа с ошибкой
type ErrorResponse struct {
	Code    string `json:"code"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// RespondWithError отправляет ответ с ошибкой
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, code, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, ErrorResponse{
		Code:    code,
		Status:  statusCode,
		Message: message,
	})
}

// errorStatus связывает доменную ошибку с HTTP статусом и сообщением для клиента
type errorStatus struct {
	err     error
	status  int
	message string
}

var errorStatuses = []errorStatus{
	{domain.ErrTokenExpired, http.StatusGone, "Token has expired"},
	{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
	{domain.ErrGroupNotFound, http.StatusNotFound, "group not found"},
	{domain.ErrGroupRequestNotFound, http.StatusNotFound, "group request not found"},
	{domain.ErrTokenNotFound, http.StatusNotFound, "token not found"},
	{domain.ErrNotFound, http.StatusNotFound, "resource not found"},
	{domain.ErrEmailInUse, http.StatusConflict, "email already in use"},
	{domain.ErrUsernameInUse, http.StatusConflict, "username already in use"},
	{domain.ErrGroupRequestExists, http.StatusConflict, "group request already exists"},
	{domain.ErrAlreadyInGroup, http.StatusUnprocessableEntity, "user is already in the group"},
	{domain.ErrMasterRequired, http.StatusUnprocessableEntity, "master query should be provided"},
	{domain.ErrInvalidMaster, http.StatusUnprocessableEntity, "master query should be a positive integer"},
	{domain.ErrCannotRemoveMaster, http.StatusBadRequest, "Cannot remove master from group"},
	{domain.ErrForbidden, http.StatusForbidden, "not authorized to perform this action"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
	{domain.ErrInvalidToken, http.StatusUnauthorized, "invalid or expired token"},
	{domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
}

// HandleError преобразует доменные ошибки в HTTP ответы
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		RespondWithError(w, r, http.StatusUnprocessableEntity, string(domain.CodeBadRequest), verr.Message)
		return
	}

	for _, es := range errorStatuses {
		if errors.Is(err, es.err) {
			RespondWithError(w, r, es.status, string(domain.MapErrorToCode(err)), es.message)
			return
		}
	}

	// Неожиданные ошибки логируем, клиенту отдаем общее сообщение
	slog.ErrorContext(r.Context(), "Unhandled error",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
	)
	RespondWithError(w, r, http.StatusInternalServerError, string(domain.CodeInternal), "internal server error")
}

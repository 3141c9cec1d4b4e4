package handler

import (
	"net/http"

	"github.com/roleplay/roleplay-api/internal/domain"
	"github.com/roleplay/roleplay-api/internal/middleware"
	"github.com/roleplay/roleplay-api/internal/service"
)

// SessionHandler обрабатывает вход и выход пользователя
type SessionHandler struct {
	authService *service.AuthService
	validator   *Validator
}

// NewSessionHandler создает новый SessionHandler
func NewSessionHandler(authService *service.AuthService, validator *Validator) *SessionHandler {
	return &SessionHandler{
		authService: authService,
		validator:   validator,
	}
}

// LoginRequest представляет тело запроса на логин
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse представляет тело ответа на логин
type LoginResponse struct {
	User  *domain.User        `json:"user"`
	Token *domain.AccessToken `json:"token"`
}

// Create обрабатывает POST /sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.validator.decodeAndValidate(w, r, &req) {
		return
	}

	user, token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, LoginResponse{User: user, Token: token})
}

// Delete обрабатывает DELETE /sessions
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		HandleError(w, r, domain.ErrUnauthorized)
		return
	}

	if err := h.authService.Logout(r.Context(), claims); err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithEmpty(w, r)
}

package handler

import (
	"net/http"

	"github.com/roleplay/roleplay-api/internal/domain"
	"github.com/roleplay/roleplay-api/internal/middleware"
	"github.com/roleplay/roleplay-api/internal/service"
)

// UserHandler обрабатывает эндпоинты пользователей
type UserHandler struct {
	userService *service.UserService
	validator   *Validator
}

// NewUserHandler создает новый UserHandler
func NewUserHandler(userService *service.UserService, validator *Validator) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator,
	}
}

// CreateUserRequest представляет тело запроса на регистрацию
type CreateUserRequest struct {
	Username string  `json:"username" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=4"`
	Avatar   *string `json:"avatar" validate:"omitempty,url"`
}

// UpdateUserRequest представляет тело запроса на изменение профиля
type UpdateUserRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=4"`
	Avatar   *string `json:"avatar" validate:"omitempty,url"`
}

// UserResponse представляет ответ с пользователем
type UserResponse struct {
	User *domain.User `json:"user"`
}

// Create обрабатывает POST /users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !h.validator.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.Create(r.Context(), service.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Avatar:   req.Avatar,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, UserResponse{User: user})
}

// Update обрабатывает PUT /users/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		HandleError(w, r, err)
		return
	}

	var req UpdateUserRequest
	if !h.validator.decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.userService.Update(r.Context(), middleware.GetUserIDFromContext(r.Context()), userID, service.UpdateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Avatar:   req.Avatar,
	})
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, UserResponse{User: user})
}

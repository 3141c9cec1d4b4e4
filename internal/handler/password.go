package handler

import (
	"net/http"

	"github.com/roleplay/roleplay-api/internal/service"
)

// PasswordHandler обрабатывает восстановление пароля
type PasswordHandler struct {
	passwordService *service.PasswordService
	validator       *Validator
}

// NewPasswordHandler создает новый PasswordHandler
func NewPasswordHandler(passwordService *service.PasswordService, validator *Validator) *PasswordHandler {
	return &PasswordHandler{
		passwordService: passwordService,
		validator:       validator,
	}
}

// ForgotPasswordRequest представляет тело запроса на восстановление пароля
type ForgotPasswordRequest struct {
	Email            string `json:"email" validate:"required,email"`
	ResetPasswordURL string `json:"resetPasswordUrl" validate:"required,url"`
}

// ResetPasswordRequest представляет тело запроса на установку нового пароля
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=4"`
}

// Forgot обрабатывает POST /forgot-password
func (h *PasswordHandler) Forgot(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if !h.validator.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.passwordService.ForgotPassword(r.Context(), req.Email, req.ResetPasswordURL); err != nil {
		HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reset обрабатывает POST /reset-password
func (h *PasswordHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if !h.validator.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.passwordService.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

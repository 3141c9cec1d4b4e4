package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/roleplay/roleplay-api/internal/domain"
)

// ValidationError описывает невалидное тело запроса (422)
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validator проверяет тела запросов по тегам validate и переводит ошибки на английский
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// NewValidator создает Validator, использующий имена полей из json тегов
func NewValidator() (*Validator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	// В сообщениях используем имя поля из json тега, а не имя поля структуры
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enT := en.New()
	uni := ut.New(enT, enT)

	trans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, fmt.Errorf("translator for locale %q not found", "en")
	}

	if err := entranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, fmt.Errorf("failed to register translations: %w", err)
	}

	return &Validator{validate: v, trans: trans}, nil
}

// Struct валидирует структуру. Возвращает *ValidationError с первой ошибкой поля.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &ValidationError{Message: verrs[0].Translate(v.trans)}
	}

	return &ValidationError{Message: err.Error()}
}

// decodeAndValidate читает JSON тело запроса в dst и валидирует его.
// При ошибке сам отправляет ответ и возвращает false.
func (v *Validator) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, string(domain.CodeBadRequest), "invalid request body")
		return false
	}

	if err := v.Struct(dst); err != nil {
		HandleError(w, r, err)
		return false
	}

	return true
}

package domain

import "errors"

// Доменные ошибки
var (
	// ErrNotFound возвращается когда ресурс не найден
	ErrNotFound = errors.New("resource not found")

	// ErrUserNotFound возвращается когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrGroupNotFound возвращается когда группа не найдена
	ErrGroupNotFound = errors.New("group not found")

	// ErrGroupRequestNotFound возвращается когда заявка не найдена в указанной группе
	ErrGroupRequestNotFound = errors.New("group request not found")

	// ErrTokenNotFound возвращается когда токен сброса пароля не найден или уже использован
	ErrTokenNotFound = errors.New("token not found")

	// ErrEmailInUse возвращается при регистрации с уже занятым email
	ErrEmailInUse = errors.New("email already in use")

	// ErrUsernameInUse возвращается при регистрации с уже занятым username
	ErrUsernameInUse = errors.New("username already in use")

	// ErrGroupRequestExists возвращается при повторной заявке в ту же группу
	ErrGroupRequestExists = errors.New("group request already exists")

	// ErrAlreadyInGroup возвращается когда пользователь уже игрок группы
	ErrAlreadyInGroup = errors.New("user is already in the group")

	// ErrMasterRequired возвращается когда не передан query параметр master
	ErrMasterRequired = errors.New("master query should be provided")

	// ErrInvalidMaster возвращается когда query параметр master не является положительным числом
	ErrInvalidMaster = errors.New("master query should be a positive integer")

	// ErrCannotRemoveMaster возвращается при попытке удалить мастера из его группы
	ErrCannotRemoveMaster = errors.New("cannot remove master from group")

	// ErrForbidden возвращается когда у пользователя нет прав на действие
	ErrForbidden = errors.New("not authorized to perform this action")

	// ErrUnauthorized возвращается при неудачной аутентификации
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials возвращается при неверной паре email/пароль
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken возвращается когда JWT токен невалиден или отозван
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired возвращается когда токен сброса пароля просрочен
	ErrTokenExpired = errors.New("token has expired")
)

// ErrorCode представляет коды ошибок API
type ErrorCode string

// Коды ошибок, которые видит клиент
const (
	CodeBadRequest   ErrorCode = "BAD_REQUEST"
	CodeTokenExpired ErrorCode = "TOKEN_EXPIRED"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
)

// MapErrorToCode преобразует доменные ошибки в коды ошибок API
func MapErrorToCode(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return CodeTokenExpired
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidToken):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case IsNotFound(err), errors.Is(err, ErrEmailInUse), errors.Is(err, ErrUsernameInUse),
		errors.Is(err, ErrGroupRequestExists), errors.Is(err, ErrAlreadyInGroup),
		errors.Is(err, ErrMasterRequired), errors.Is(err, ErrInvalidMaster),
		errors.Is(err, ErrCannotRemoveMaster):
		return CodeBadRequest
	default:
		return CodeInternal
	}
}

// IsNotFound сообщает, относится ли ошибка к отсутствующему ресурсу
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrGroupNotFound) ||
		errors.Is(err, ErrGroupRequestNotFound) ||
		errors.Is(err, ErrTokenNotFound)
}

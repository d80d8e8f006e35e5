package services

import (
	"errors"
	"fmt"
)

var (
	// ErrUsernameTaken — конфликт уникальности username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials — намеренно общая ошибка логина: не раскрывает,
	// существует ли пользователь.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound — id никуда не указывает.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidProfile — OAuth-профиль без пригодного идентификатора.
	ErrInvalidProfile = errors.New("oauth profile has no usable identifier")
)

// ValidationError описывает некорректное поле входных данных.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// User — учётная запись. PasswordHash и GoogleID опциональны: локальный
// аккаунт имеет хэш, OAuth-аккаунт — google id, может быть и то и другое.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Fullname     string    `gorm:"not null"`
	PasswordHash *string
	Avatar       string
	GoogleID     *string `gorm:"uniqueIndex"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword reports whether the account can authenticate locally.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// PublicUser — внешнее представление пользователя, без хэша пароля.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	Avatar   string `json:"avatar"`
}

// Public strips everything the outside world must not see.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID.String(),
		Username: u.Username,
		Fullname: u.Fullname,
		Avatar:   u.Avatar,
	}
}

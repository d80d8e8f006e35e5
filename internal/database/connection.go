package database

import (
	"errors"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/velmor/go-auth-api/internal/models"
)

func (d *Database) Connect(dsn string) error {
	if dsn == "" {
		return errors.New("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}

	// Уникальные индексы по username и google_id создаёт AutoMigrate;
	// именно они сериализуют конкурентные регистрации.
	if err := db.AutoMigrate(&models.User{}); err != nil {
		return err
	}

	d.db = db

	return nil
}

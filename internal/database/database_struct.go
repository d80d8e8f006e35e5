package database

import "gorm.io/gorm"

// Database — хранилище учётных записей поверх gorm.
type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}

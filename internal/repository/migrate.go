package repository

import (
	"gorm.io/gorm"

	"resource-hub-go/internal/model"
)

// AutoMigrate creates any missing tables and indexes. It never drops or alters data.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Resource{},
		&model.LogEntry{},
	)
}

package database

import (
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(databaseURL string) (*gorm.DB, error) {
	return Open(postgres.Open(databaseURL))
}

// Open carries the shared GORM config; TranslateError maps driver
// unique violations onto gorm.ErrDuplicatedKey for the conflict checks
// in the store layers.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	log.Debug("GORM connected to database")

	return db, nil
}

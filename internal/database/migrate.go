package database

import (
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"stockroom/pkg/passwd"
)

// Migrate creates missing tables and seeds the initial admin account and
// sample catalog. It is invoked exactly once from the entry point, but
// every step is idempotent so an accidental second call is harmless.
func Migrate(db *gorm.DB, adminPassword string) error {
	err := db.AutoMigrate(
		&User{},
		&LoginAttempt{},
		&Product{},
		&SaleRecord{},
		&ResetKey{},
	)
	if err != nil {
		return err
	}

	var userCount int64
	if err := db.Model(&User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return nil
	}

	admin := User{
		Username:     "admin",
		PasswordHash: passwd.Hash(adminPassword),
		Role:         RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	sampleProducts := []Product{
		{SKU: "TSH001", Name: "Basic T-Shirt", Price: 2500, Quantity: 50},
		{SKU: "JKT002", Name: "Denim Jacket", Price: 8500, Quantity: 20},
		{SKU: "PTS003", Name: "Skinny Pants", Price: 4500, Quantity: 30},
		{SKU: "SWT004", Name: "Casual Sweatshirt", Price: 3500, Quantity: 25},
		{SKU: "SHO005", Name: "Sneakers", Price: 12000, Quantity: 15},
	}
	if err := db.Create(&sampleProducts).Error; err != nil {
		return err
	}

	log.Infof("seeded admin account and %d sample products", len(sampleProducts))

	return nil
}

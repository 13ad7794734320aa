package migrations

import (
	"gorm.io/gorm"

	salespostgres "github.com/Apurer/sales-order-api/internal/domains/sales/adapters/persistence/postgres"
)

// Run applies the schema for the bounded contexts.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(salespostgres.Models()...)
}

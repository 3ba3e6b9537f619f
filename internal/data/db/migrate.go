package db

import (
	"fmt"

	types "github.com/MohamedSoumare/gestion-commandes-v2-abc-coperation/internal/domain"
	"gorm.io/gorm"
)

// Models lists every table owned by the tool, parents first.
func Models() []interface{} {
	return []interface{}{
		&types.Customer{},
		&types.Product{},
		&types.PurchaseOrder{},
		&types.OrderDetail{},
		&types.Payment{},
	}
}

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

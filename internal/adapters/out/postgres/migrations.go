package postgres

import (
	"fmt"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/outboxrepo"
	"fulfillment/internal/adapters/out/postgres/productrepo"
	"fulfillment/internal/adapters/out/postgres/returnrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema. It is idempotent.
func Migrate(db *gorm.DB) error {
	models := []any{
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&returnrepo.RequestDTO{},
		&outboxrepo.MessageDTO{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("migrate %T: %w", model, err)
		}
	}

	// One open request per order item and kind; concurrent creators that both
	// pass the existence check are stopped here.
	return db.Exec(fmt.Sprintf(
		`CREATE UNIQUE INDEX IF NOT EXISTS %s
		ON return_replace_requests (order_item_id, kind)
		WHERE status IN ('pending', 'approved')`,
		returnrepo.OpenRequestIndex,
	)).Error
}

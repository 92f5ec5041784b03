package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
)

// ProductRepository gives the fulfillment core access to the catalogue.
//
// Stock contract: every stock mutation goes through rows returned by
// GetForUpdate, which must lock them (SELECT ... FOR UPDATE) in ascending id
// order for the rest of the transaction. Two transactions restocking the same
// products therefore serialize instead of losing an increment, and the fixed
// lock order keeps them from deadlocking.
type ProductRepository interface {
	Add(ctx context.Context, aggregate *product.Product) error

	// Update writes back the stock quantity of a product loaded by GetForUpdate.
	Update(ctx context.Context, aggregate *product.Product) error

	// Get loads products without locking, ordered by id. Missing ids are an
	// ObjectNotFoundError.
	Get(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error)

	// GetForUpdate loads and locks products, ordered by id. Missing ids are an
	// ObjectNotFoundError.
	GetForUpdate(ctx context.Context, ids []kernel.UUID) ([]*product.Product, error)
}

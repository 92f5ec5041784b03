package product

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrProductIsNotConstructed is returned by Validate for a zero Product.
var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct")

// Product is the stock-keeping view of a catalogue item.
type Product struct {
	id            kernel.UUID
	vendorID      kernel.UUID
	name          string
	stockQuantity int
	isReturnable  bool
	isReplaceable bool
	guard         guard.ConstructorGuard
}

// NewProduct validates and builds a product.
func NewProduct(id, vendorID kernel.UUID, name string, stockQuantity int, returnable, replaceable bool) (*Product, error) {
	if err := errors.Join(
		id.Validate(),
		vendorID.Validate(),
		validateName(name),
		validateStock(stockQuantity),
	); err != nil {
		return nil, err
	}

	return &Product{
		id:            id,
		vendorID:      vendorID,
		name:          name,
		stockQuantity: stockQuantity,
		isReturnable:  returnable,
		isReplaceable: replaceable,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// RestoreProduct rebuilds a product loaded from storage.
func RestoreProduct(id, vendorID kernel.UUID, name string, stockQuantity int, returnable, replaceable bool) *Product {
	return &Product{
		id:            id,
		vendorID:      vendorID,
		name:          name,
		stockQuantity: stockQuantity,
		isReturnable:  returnable,
		isReplaceable: replaceable,
		guard:         guard.NewConstructorGuard(),
	}
}

func (p *Product) ID() kernel.UUID { return p.id }
func (p *Product) VendorID() kernel.UUID { return p.vendorID }
func (p *Product) Name() string { return p.name }
func (p *Product) StockQuantity() int { return p.stockQuantity }
func (p *Product) IsReturnable() bool { return p.isReturnable }
func (p *Product) IsReplaceable() bool { return p.isReplaceable }

// Restock puts quantity units back on the shelf.
func (p *Product) Restock(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	p.stockQuantity += quantity
	return nil
}

// Validate ensures the product was built through a constructor.
func (p *Product) Validate() error {
	if p == nil {
		return ErrProductIsNotConstructed
	}
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func validateName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	return nil
}

func validateStock(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsOutOfRangeError("stockQuantity", quantity, 0, "unbounded")
	}
	return nil
}

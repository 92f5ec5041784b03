package services

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/pkg/errs"
)

// RestockLine puts Quantity units of a product back into stock.
type RestockLine struct {
	ProductID kernel.UUID
	Quantity  int
}

// VendorScope limits restocking to the items of one vendor. The zero value
// (AllVendors) covers every item.
type VendorScope struct {
	vendorID *kernel.UUID
}

// AllVendors restores every item of the order.
func AllVendors() VendorScope { return VendorScope{} }

// OnlyVendor restores only the items whose product is sold by vendorID.
func OnlyVendor(vendorID kernel.UUID) VendorScope {
	return VendorScope{vendorID: &vendorID}
}

func (s VendorScope) includes(p *product.Product) bool {
	return s.vendorID == nil || p.VendorID().IsEqual(*s.vendorID)
}

// StockReconciler restores product stock for cancelled, rejected and returned items.
//
// Callers must hand in products that are locked for the current transaction
// (ProductRepository.GetForUpdate) and persist the changed products in the same
// unit of work as the status change that triggered the restock.
//
// Example:
//
//	reconciler := services.NewStockReconciler()
//	lines, err := reconciler.LinesFor(o.Items(), products, services.OnlyVendor(actor.ID()))
//	changed, err := reconciler.Restore(products, lines)
//	for _, p := range changed {
//	    _ = uow.ProductRepository().Update(ctx, p)
//	}
type StockReconciler struct{}

func NewStockReconciler() StockReconciler {
	return StockReconciler{}
}

// LinesFor returns one line per item in scope. Every item's product must be present.
func (StockReconciler) LinesFor(
	items []*order.Item,
	products map[kernel.UUID]*product.Product,
	scope VendorScope,
) ([]RestockLine, error) {
	lines := make([]RestockLine, 0, len(items))
	for _, item := range items {
		p, ok := products[item.ProductID()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("product", item.ProductID().String())
		}
		if !scope.includes(p) {
			continue
		}
		lines = append(lines, RestockLine{ProductID: item.ProductID(), Quantity: item.Quantity()})
	}
	return lines, nil
}

// Restore applies every line and returns the changed products, each once, in
// the order they first appear. Nothing is applied unless all lines are valid.
func (StockReconciler) Restore(
	products map[kernel.UUID]*product.Product,
	lines []RestockLine,
) ([]*product.Product, error) {
	totals := make(map[kernel.UUID]int, len(lines))
	ids := make([]kernel.UUID, 0, len(lines))
	var validationErrs []error
	for _, line := range lines {
		if _, ok := products[line.ProductID]; !ok {
			validationErrs = append(validationErrs, errs.NewObjectNotFoundError("product", line.ProductID.String()))
			continue
		}
		if line.Quantity <= 0 {
			validationErrs = append(validationErrs, errs.NewValueIsOutOfRangeError("quantity", line.Quantity, 1, "unbounded"))
			continue
		}
		if _, seen := totals[line.ProductID]; !seen {
			ids = append(ids, line.ProductID)
		}
		totals[line.ProductID] += line.Quantity
	}
	if err := errors.Join(validationErrs...); err != nil {
		return nil, err
	}

	changed := make([]*product.Product, 0, len(ids))
	for _, id := range ids {
		p := products[id]
		if err := p.Restock(totals[id]); err != nil {
			return nil, err
		}
		changed = append(changed, p)
	}
	return changed, nil
}

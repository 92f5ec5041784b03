package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// cancelAndRestock applies the in-memory part of a cancellation shared by the
// owner and vendor flows: status, refund marker and stock. It returns the
// products whose stock changed.
func cancelAndRestock(
	ctx context.Context,
	o *order.Order,
	products map[kernel.UUID]*product.Product,
	scope services.VendorScope,
	reason *string,
	refunds ports.RefundGateway,
) ([]*product.Product, error) {
	at := utcNow()
	if err := o.Cancel(at, reason); err != nil {
		return nil, err
	}

	reconciler := services.NewStockReconciler()
	lines, err := reconciler.LinesFor(o.Items(), products, scope)
	if err != nil {
		return nil, err
	}
	changed, err := reconciler.Restore(products, lines)
	if err != nil {
		return nil, err
	}

	total := o.Total()
	if err = refunds.Refund(ctx, ports.Refund{
		OrderID: o.ID(),
		UserID:  o.UserID(),
		Amount:  total,
		Reason:  RefundReasonCancelled,
	}); err != nil {
		return nil, err
	}
	if err = o.MarkRefunded(total, at); err != nil {
		return nil, err
	}
	return changed, nil
}

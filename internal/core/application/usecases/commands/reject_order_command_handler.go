package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/access"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// RejectOrderCommandHandler rejects an order and restores the stock of the
// acting vendor's items (all items for an admin). The payment status is left
// as it is.
type RejectOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     ports.OrderLocker
}

func NewRejectOrderCommandHandler(uowFactory OrderUoWFactory, locker ports.OrderLocker) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{uowFactory: uowFactory, locker: locker}
}

func (h RejectOrderCommandHandler) Handle(ctx context.Context, command RejectOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	var result *order.Order
	err := withLock(ctx, h.locker, command.OrderID(), func() error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer func() {
			_ = uow.Rollback(ctx)
		}()

		o, err := uow.OrderRepository().GetForUpdate(ctx, command.OrderID())
		if err != nil {
			return err
		}
		productRepo := uow.ProductRepository()
		products, err := productRepo.GetForUpdate(ctx, o.ProductIDs())
		if err != nil {
			return err
		}
		if err = access.AuthorizeManageOrder(command.Actor(), vendorIDs(products)); err != nil {
			return err
		}

		if err = o.Reject(utcNow(), command.Reason()); err != nil {
			return err
		}

		index := indexProducts(products)
		reconciler := services.NewStockReconciler()
		lines, err := reconciler.LinesFor(o.Items(), index, restockScope(command.Actor()))
		if err != nil {
			return err
		}
		changed, err := reconciler.Restore(index, lines)
		if err != nil {
			return err
		}

		if err = saveProducts(ctx, productRepo, changed); err != nil {
			return err
		}
		if err = uow.OrderRepository().Update(ctx, o); err != nil {
			return err
		}
		if err = uow.Commit(ctx); err != nil {
			return err
		}

		result = o
		return nil
	})
	return result, err
}

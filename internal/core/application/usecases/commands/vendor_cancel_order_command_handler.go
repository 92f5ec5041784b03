package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/access"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// VendorCancelOrderCommandHandler cancels an order from the vendor side.
//
// The returnable check covers every item of the order, but only the acting
// vendor's items are restocked. An admin restocks all items.
type VendorCancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	refunds    ports.RefundGateway
	locker     ports.OrderLocker
}

func NewVendorCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	refunds ports.RefundGateway,
	locker ports.OrderLocker,
) VendorCancelOrderCommandHandler {
	return VendorCancelOrderCommandHandler{uowFactory: uowFactory, refunds: refunds, locker: locker}
}

func (h VendorCancelOrderCommandHandler) Handle(ctx context.Context, command VendorCancelOrderCommand) (*order.Order, error) {
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
		if err = o.ValidateCancel(); err != nil {
			return err
		}

		index := indexProducts(products)
		if err = services.NewReturnPolicy().CheckCancellable(o.Items(), index); err != nil {
			return err
		}

		changed, err := cancelAndRestock(ctx, o, index, restockScope(command.Actor()), command.Reason(), h.refunds)
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

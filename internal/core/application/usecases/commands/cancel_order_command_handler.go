package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/access"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// RefundReasonCancelled is passed to the refund gateway for cancellations.
const RefundReasonCancelled = "order cancelled"

// CancelOrderCommandHandler cancels an order on behalf of its owner.
//
// In one transaction it checks that every item is returnable, moves the order
// to cancelled, refunds the order total and restores the stock of every item.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	refunds    ports.RefundGateway
	locker     ports.OrderLocker
}

func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	refunds ports.RefundGateway,
	locker ports.OrderLocker,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory, refunds: refunds, locker: locker}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, command CancelOrderCommand) (*order.Order, error) {
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
		if err = access.AuthorizeCancelOrder(command.Actor(), o.UserID()); err != nil {
			return err
		}
		if err = o.ValidateCancel(); err != nil {
			return err
		}

		productRepo := uow.ProductRepository()
		products, err := productRepo.GetForUpdate(ctx, o.ProductIDs())
		if err != nil {
			return err
		}
		index := indexProducts(products)
		if err = services.NewReturnPolicy().CheckCancellable(o.Items(), index); err != nil {
			return err
		}

		changed, err := cancelAndRestock(ctx, o, index, services.AllVendors(), nil, h.refunds)
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

package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/access"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// UpdateOrderStatusCommandHandler advances an order by exactly one fulfillment
// step. A pending order is never confirmed here; that is ConfirmOrderCommand's job.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     ports.OrderLocker
}

func NewUpdateOrderStatusCommandHandler(uowFactory OrderUoWFactory, locker ports.OrderLocker) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{uowFactory: uowFactory, locker: locker}
}

func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, command UpdateOrderStatusCommand) (*order.Order, error) {
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
		products, err := uow.ProductRepository().Get(ctx, o.ProductIDs())
		if err != nil {
			return err
		}
		if err = access.AuthorizeManageOrder(command.Actor(), vendorIDs(products)); err != nil {
			return err
		}

		if err = o.Advance(command.Status(), utcNow()); err != nil {
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

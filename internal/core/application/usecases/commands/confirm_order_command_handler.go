package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/access"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// ConfirmOrderCommandHandler moves a pending order to confirmed and sets its
// expected delivery date. Stock is untouched, so products are read without locks.
type ConfirmOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     ports.OrderLocker
}

func NewConfirmOrderCommandHandler(uowFactory OrderUoWFactory, locker ports.OrderLocker) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{uowFactory: uowFactory, locker: locker}
}

func (h ConfirmOrderCommandHandler) Handle(ctx context.Context, command ConfirmOrderCommand) (*order.Order, error) {
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

		if err = o.Confirm(utcNow()); err != nil {
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

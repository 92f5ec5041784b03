package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/access"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrVendorCancelOrderCommandIsNotConstructed = errors.New(
	"VendorCancelOrderCommand must be created via NewVendorCancelOrderCommand constructor",
)

// VendorCancelOrderCommand is a vendor or admin cancelling an order with an
// optional reason.
type VendorCancelOrderCommand struct {
	orderID kernel.UUID
	actor   access.Actor
	reason  *string
	guard   guard.ConstructorGuard
}

func NewVendorCancelOrderCommand(orderID kernel.UUID, actor access.Actor, reason *string) (VendorCancelOrderCommand, error) {
	if err := errors.Join(requireActor(actor), orderID.Validate()); err != nil {
		return VendorCancelOrderCommand{}, err
	}
	return VendorCancelOrderCommand{
		orderID: orderID,
		actor:   actor,
		reason:  normalizeReason(reason),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c VendorCancelOrderCommand) OrderID() kernel.UUID { return c.orderID }

func (c VendorCancelOrderCommand) Actor() access.Actor { return c.actor }

func (c VendorCancelOrderCommand) Reason() *string { return c.reason }

func (c VendorCancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrVendorCancelOrderCommandIsNotConstructed)
}

package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/access"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRejectOrderCommandIsNotConstructed = errors.New(
	"RejectOrderCommand must be created via NewRejectOrderCommand constructor",
)

// RejectOrderCommand is a vendor or admin declining an order before delivery.
type RejectOrderCommand struct {
	orderID kernel.UUID
	actor   access.Actor
	reason  *string
	guard   guard.ConstructorGuard
}

func NewRejectOrderCommand(orderID kernel.UUID, actor access.Actor, reason *string) (RejectOrderCommand, error) {
	if err := errors.Join(requireActor(actor), orderID.Validate()); err != nil {
		return RejectOrderCommand{}, err
	}
	return RejectOrderCommand{
		orderID: orderID,
		actor:   actor,
		reason:  normalizeReason(reason),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RejectOrderCommand) OrderID() kernel.UUID { return c.orderID }

func (c RejectOrderCommand) Actor() access.Actor { return c.actor }

func (c RejectOrderCommand) Reason() *string { return c.reason }

func (c RejectOrderCommand) Validate() error {
	return c.guard.Validate(ErrRejectOrderCommandIsNotConstructed)
}

package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/access"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand is a customer cancelling their own order before it ships.
//
// Example:
//
//	cmd, err := NewCancelOrderCommand(orderID, actor)
//	if err != nil {
//	    return err
//	}
//	cancelled, err := handler.Handle(ctx, cmd)
type CancelOrderCommand struct {
	orderID kernel.UUID
	actor   access.Actor
	guard   guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID kernel.UUID, actor access.Actor) (CancelOrderCommand, error) {
	if err := errors.Join(requireActor(actor), orderID.Validate()); err != nil {
		return CancelOrderCommand{}, err
	}
	return CancelOrderCommand{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CancelOrderCommand) OrderID() kernel.UUID { return c.orderID }

func (c CancelOrderCommand) Actor() access.Actor { return c.actor }

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/access"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrConfirmOrderCommandIsNotConstructed = errors.New(
	"ConfirmOrderCommand must be created via NewConfirmOrderCommand constructor",
)

// ConfirmOrderCommand accepts a pending order.
type ConfirmOrderCommand struct {
	orderID kernel.UUID
	actor   access.Actor
	guard   guard.ConstructorGuard
}

func NewConfirmOrderCommand(orderID kernel.UUID, actor access.Actor) (ConfirmOrderCommand, error) {
	if err := errors.Join(requireActor(actor), orderID.Validate()); err != nil {
		return ConfirmOrderCommand{}, err
	}
	return ConfirmOrderCommand{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c ConfirmOrderCommand) OrderID() kernel.UUID { return c.orderID }

func (c ConfirmOrderCommand) Actor() access.Actor { return c.actor }

func (c ConfirmOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderCommandIsNotConstructed)
}

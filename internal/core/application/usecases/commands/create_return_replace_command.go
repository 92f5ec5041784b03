package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/access"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/returns"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateReturnReplaceCommandIsNotConstructed = errors.New(
	"CreateReturnReplaceCommand must be created via NewCreateReturnRequestCommand or NewCreateReplaceRequestCommand",
)

// CreateReturnReplaceCommand is the order owner asking to return or replace
// one delivered item.
type CreateReturnReplaceCommand struct {
	orderID     kernel.UUID
	orderItemID kernel.UUID
	actor       access.Actor
	kind        returns.Kind
	reason      *string
	guard       guard.ConstructorGuard
}

// NewCreateReturnRequestCommand asks for a refund of an item.
func NewCreateReturnRequestCommand(
	orderID, orderItemID kernel.UUID,
	actor access.Actor,
	reason *string,
) (CreateReturnReplaceCommand, error) {
	return newCreateReturnReplaceCommand(orderID, orderItemID, actor, returns.KindReturn, reason)
}

// NewCreateReplaceRequestCommand asks for a new unit of an item.
func NewCreateReplaceRequestCommand(
	orderID, orderItemID kernel.UUID,
	actor access.Actor,
	reason *string,
) (CreateReturnReplaceCommand, error) {
	return newCreateReturnReplaceCommand(orderID, orderItemID, actor, returns.KindReplace, reason)
}

func newCreateReturnReplaceCommand(
	orderID, orderItemID kernel.UUID,
	actor access.Actor,
	kind returns.Kind,
	reason *string,
) (CreateReturnReplaceCommand, error) {
	if err := errors.Join(requireActor(actor), orderID.Validate(), orderItemID.Validate()); err != nil {
		return CreateReturnReplaceCommand{}, err
	}
	return CreateReturnReplaceCommand{
		orderID:     orderID,
		orderItemID: orderItemID,
		actor:       actor,
		kind:        kind,
		reason:      normalizeReason(reason),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateReturnReplaceCommand) OrderID() kernel.UUID { return c.orderID }

func (c CreateReturnReplaceCommand) OrderItemID() kernel.UUID { return c.orderItemID }

func (c CreateReturnReplaceCommand) Actor() access.Actor { return c.actor }

func (c CreateReturnReplaceCommand) Kind() returns.Kind { return c.kind }

func (c CreateReturnReplaceCommand) Reason() *string { return c.reason }

func (c CreateReturnReplaceCommand) Validate() error {
	return c.guard.Validate(ErrCreateReturnReplaceCommandIsNotConstructed)
}

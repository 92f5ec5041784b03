package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/access"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrApproveReturnReplaceCommandIsNotConstructed = errors.New(
		"ApproveReturnReplaceCommand must be created via NewApproveReturnReplaceCommand constructor",
	)
	ErrRejectReturnReplaceCommandIsNotConstructed = errors.New(
		"RejectReturnReplaceCommand must be created via NewRejectReturnReplaceCommand constructor",
	)
)

// ApproveReturnReplaceCommand approves and immediately processes a pending request.
type ApproveReturnReplaceCommand struct {
	requestID kernel.UUID
	actor     access.Actor
	guard     guard.ConstructorGuard
}

func NewApproveReturnReplaceCommand(requestID kernel.UUID, actor access.Actor) (ApproveReturnReplaceCommand, error) {
	if err := errors.Join(requireActor(actor), requestID.Validate()); err != nil {
		return ApproveReturnReplaceCommand{}, err
	}
	return ApproveReturnReplaceCommand{requestID: requestID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c ApproveReturnReplaceCommand) RequestID() kernel.UUID { return c.requestID }

func (c ApproveReturnReplaceCommand) Actor() access.Actor { return c.actor }

func (c ApproveReturnReplaceCommand) Validate() error {
	return c.guard.Validate(ErrApproveReturnReplaceCommandIsNotConstructed)
}

// RejectReturnReplaceCommand declines a pending request with an optional reason.
type RejectReturnReplaceCommand struct {
	requestID kernel.UUID
	actor     access.Actor
	reason    *string
	guard     guard.ConstructorGuard
}

func NewRejectReturnReplaceCommand(requestID kernel.UUID, actor access.Actor, reason *string) (RejectReturnReplaceCommand, error) {
	if err := errors.Join(requireActor(actor), requestID.Validate()); err != nil {
		return RejectReturnReplaceCommand{}, err
	}
	return RejectReturnReplaceCommand{
		requestID: requestID,
		actor:     actor,
		reason:    normalizeReason(reason),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RejectReturnReplaceCommand) RequestID() kernel.UUID { return c.requestID }

func (c RejectReturnReplaceCommand) Actor() access.Actor { return c.actor }

func (c RejectReturnReplaceCommand) Reason() *string { return c.reason }

func (c RejectReturnReplaceCommand) Validate() error {
	return c.guard.Validate(ErrRejectReturnReplaceCommandIsNotConstructed)
}

package commands

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrPublishOutboxEventsCommandIsNotConstructed = errors.New(
	"PublishOutboxEventsCommand must be created via NewPublishOutboxEventsCommand constructor",
)

const maxOutboxBatch = 1000

// PublishOutboxEventsCommand relays up to BatchSize stored events to the broker.
type PublishOutboxEventsCommand struct {
	batchSize int
	guard     guard.ConstructorGuard
}

func NewPublishOutboxEventsCommand(batchSize int) (PublishOutboxEventsCommand, error) {
	if batchSize < 1 || batchSize > maxOutboxBatch {
		return PublishOutboxEventsCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, maxOutboxBatch)
	}
	return PublishOutboxEventsCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c PublishOutboxEventsCommand) BatchSize() int { return c.batchSize }

func (c PublishOutboxEventsCommand) Validate() error {
	return c.guard.Validate(ErrPublishOutboxEventsCommandIsNotConstructed)
}

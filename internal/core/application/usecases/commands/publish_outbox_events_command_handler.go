package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
)

// PublishOutboxEventsCommandHandler publishes stored events in order and marks
// them published. When the broker fails midway, the messages sent so far are
// still acknowledged and the rest stay for the next run, so delivery is at
// least once.
type PublishOutboxEventsCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
}

func NewPublishOutboxEventsCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
) PublishOutboxEventsCommandHandler {
	return PublishOutboxEventsCommandHandler{uowFactory: uowFactory, publisher: publisher}
}

// Handle returns the number of messages published.
func (h PublishOutboxEventsCommandHandler) Handle(ctx context.Context, command PublishOutboxEventsCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	messages, err := outbox.GetUnpublished(ctx, command.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	published := make([]uuid.UUID, 0, len(messages))
	var publishErr error
	for _, message := range messages {
		if publishErr = h.publisher.Publish(ctx, message); publishErr != nil {
			break
		}
		published = append(published, message.ID)
	}

	if len(published) > 0 {
		if err = outbox.MarkPublished(ctx, published, utcNow()); err != nil {
			return 0, errors.Join(publishErr, err)
		}
		if err = uow.Commit(ctx); err != nil {
			return 0, errors.Join(publishErr, err)
		}
	}

	return len(published), publishErr
}

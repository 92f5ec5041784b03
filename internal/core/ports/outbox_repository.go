package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OutboxMessage is a domain event stored in the same transaction as the
// aggregate change that raised it.
type OutboxMessage struct {
	ID          uuid.UUID
	AggregateID uuid.UUID
	EventName   string
	Payload     []byte
	OccurredAt  time.Time
}

// OutboxRepository reads and acknowledges stored events.
type OutboxRepository interface {
	// GetUnpublished returns up to limit unpublished messages, oldest first,
	// locked so that concurrent relays skip them.
	GetUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkPublished stamps messages as delivered to the broker.
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}

// EventPublisher delivers an outbox message to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, message OutboxMessage) error
}

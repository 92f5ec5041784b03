// Package ddd holds the building blocks shared by every aggregate root:
// domain events and the event buffer an aggregate carries until its unit of
// work commits.
package ddd

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is a fact raised by an aggregate. Implementations are plain
// structs with exported fields so the outbox can serialize them as JSON.
type DomainEvent interface {
	EventName() string
	AggregateID() uuid.UUID
	OccurredAt() time.Time
}

// EventSource is implemented by aggregates that buffer domain events.
// The unit of work drains the buffer into the outbox on commit.
type EventSource interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}

// AggregateRoot is embedded by aggregate roots to buffer raised events.
type AggregateRoot struct {
	events []DomainEvent
}

// RaiseDomainEvent appends an event to the buffer.
func (a *AggregateRoot) RaiseDomainEvent(event DomainEvent) {
	a.events = append(a.events, event)
}

// DomainEvents returns a copy of the buffered events in the order they were raised.
func (a *AggregateRoot) DomainEvents() []DomainEvent {
	events := make([]DomainEvent, len(a.events))
	copy(events, a.events)
	return events
}

// ClearDomainEvents empties the buffer.
func (a *AggregateRoot) ClearDomainEvents() {
	a.events = nil
}

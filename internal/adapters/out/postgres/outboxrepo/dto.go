// Package outboxrepo stores domain events next to the aggregate changes that
// raised them and hands them to the relay.
package outboxrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/ddd"

	"github.com/google/uuid"
)

// MessageDTO is an outbox_messages row. Sequence keeps the insertion order of
// events raised within the same instant.
type MessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Sequence    int64      `gorm:"autoIncrement;not null;uniqueIndex"`
	AggregateID uuid.UUID  `gorm:"type:uuid;not null;index"`
	EventName   string     `gorm:"type:varchar(64);not null"`
	Payload     []byte     `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time  `gorm:"not null;index"`
	PublishedAt *time.Time `gorm:"index"`
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromEvent(event ddd.DomainEvent) (MessageDTO, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return MessageDTO{}, err
	}
	return MessageDTO{
		ID:          uuid.New(),
		AggregateID: event.AggregateID(),
		EventName:   event.EventName(),
		Payload:     payload,
		OccurredAt:  event.OccurredAt(),
	}, nil
}

func toMessage(dto MessageDTO) ports.OutboxMessage {
	return ports.OutboxMessage{
		ID:          dto.ID,
		AggregateID: dto.AggregateID,
		EventName:   dto.EventName,
		Payload:     dto.Payload,
		OccurredAt:  dto.OccurredAt,
	}
}

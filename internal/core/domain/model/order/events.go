package order

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventStatusChanged = "order.status_changed"
	EventRefunded      = "order.refunded"
)

// StatusChanged is raised by every successful transition.
type StatusChanged struct {
	OrderID uuid.UUID `json:"orderId"`
	UserID  uuid.UUID `json:"userId"`
	From    string    `json:"from"`
	To      string    `json:"to"`
	Reason  *string   `json:"reason,omitempty"`
	At      time.Time `json:"at"`
}

func (e StatusChanged) EventName() string { return EventStatusChanged }

func (e StatusChanged) AggregateID() uuid.UUID { return e.OrderID }

func (e StatusChanged) OccurredAt() time.Time { return e.At }

// Refunded is raised when the payment status becomes paid as a refund marker.
type Refunded struct {
	OrderID uuid.UUID `json:"orderId"`
	UserID  uuid.UUID `json:"userId"`
	Amount  string    `json:"amount"`
	At      time.Time `json:"at"`
}

func (e Refunded) EventName() string { return EventRefunded }

func (e Refunded) AggregateID() uuid.UUID { return e.OrderID }

func (e Refunded) OccurredAt() time.Time { return e.At }

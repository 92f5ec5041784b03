package returns

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventRequestOpened        = "return_request.opened"
	EventRequestStatusChanged = "return_request.status_changed"
)

// RequestOpened is raised when a customer files a request.
type RequestOpened struct {
	RequestID   uuid.UUID `json:"requestId"`
	OrderID     uuid.UUID `json:"orderId"`
	OrderItemID uuid.UUID `json:"orderItemId"`
	VendorID    uuid.UUID `json:"vendorId"`
	Kind        string    `json:"kind"`
	At          time.Time `json:"at"`
}

func (e RequestOpened) EventName() string { return EventRequestOpened }
func (e RequestOpened) AggregateID() uuid.UUID { return e.RequestID }
func (e RequestOpened) OccurredAt() time.Time { return e.At }

// RequestStatusChanged is raised on approve, process and reject.
type RequestStatusChanged struct {
	RequestID uuid.UUID `json:"requestId"`
	OrderID   uuid.UUID `json:"orderId"`
	Kind      string    `json:"kind"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	At        time.Time `json:"at"`
}

func (e RequestStatusChanged) EventName() string { return EventRequestStatusChanged }
func (e RequestStatusChanged) AggregateID() uuid.UUID { return e.RequestID }
func (e RequestStatusChanged) OccurredAt() time.Time { return e.At }

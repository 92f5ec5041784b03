package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// Refund describes money owed back to a customer.
type Refund struct {
	OrderID kernel.UUID
	UserID  kernel.UUID
	// RequestID is set for refunds of a processed return.
	RequestID *kernel.UUID
	Amount    kernel.Money
	Reason    string
}

// RefundGateway issues refunds to the payment provider. A returned error aborts
// the surrounding transaction, so the order keeps its previous payment status.
type RefundGateway interface {
	Refund(ctx context.Context, refund Refund) error
}

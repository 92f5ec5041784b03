// Package queries holds the read side. Handlers query the database directly
// with SQL and return flat views; no aggregate is loaded.
package queries

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/returns"
)

// OrderItemView is an order line with the product it refers to.
type OrderItemView struct {
	ID          kernel.UUID
	ProductID   kernel.UUID
	ProductName string
	VendorID    kernel.UUID
	Quantity    int
	TotalPrice  kernel.Money
}

// ReturnRequestView is a return or replace request of an order.
type ReturnRequestView struct {
	ID             kernel.UUID
	OrderItemID    kernel.UUID
	VendorID       kernel.UUID
	Kind           returns.Kind
	Status         returns.Status
	Reason         *string
	RequestedAt    time.Time
	ApprovedAt     *time.Time
	RejectedAt     *time.Time
	ProcessedAt    *time.Time
	RejectedReason *string
	ReturnAmount   *kernel.Money
	RefundStatus   returns.RefundStatus
}

// OrderView is the full order as seen by its owner or an admin.
type OrderView struct {
	ID                   kernel.UUID
	UserID               kernel.UUID
	ShippingAddressID    kernel.UUID
	Status               order.Status
	PaymentStatus        order.PaymentStatus
	ConfirmedAt          *time.Time
	DispatchedAt         *time.Time
	ShippedAt            *time.Time
	DeliveredAt          *time.Time
	CancelledAt          *time.Time
	RejectedAt           *time.Time
	CancellationReason   *string
	RejectionReason      *string
	ExpectedDeliveryDate *time.Time
	CreatedAt            time.Time
	Total                kernel.Money
	Items                []OrderItemView
	Requests             []ReturnRequestView
}

// VendorOrderView is an order in a vendor's list. Items holds only the lines
// of that vendor's products (all lines for an admin).
type VendorOrderView struct {
	ID                   kernel.UUID
	UserID               kernel.UUID
	Status               order.Status
	PaymentStatus        order.PaymentStatus
	CreatedAt            time.Time
	ExpectedDeliveryDate *time.Time
	Items                []OrderItemView
	ItemsTotal           kernel.Money
}

// VendorOrdersPage is one page of a vendor's orders. Total counts the orders
// matching the status filter; StatusCounts ignores the filter.
type VendorOrdersPage struct {
	Orders       []VendorOrderView
	Total        int64
	StatusCounts map[order.Status]int64
	Limit        int
	Offset       int
}

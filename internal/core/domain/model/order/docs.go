// Package order implements the Order aggregate and its state machine.
//
// The package includes:
//   - Order: the aggregate root holding lines, timestamps, reasons and payment state
//   - Item: an immutable order line (product, quantity, captured total)
//   - Status: the thirteen lifecycle states and the single transition table
//   - StatusChanged, Refunded: domain events buffered on the aggregate
//
// Key business rules:
//   - forward fulfillment is strictly Pending -> Confirmed -> Dispatched -> Shipped -> Delivered
//   - Pending leaves only through Confirm, Cancel or Reject
//   - cancellation stops at Shipped, rejection stops at Delivered
//   - once delivered, the order follows its return and replace requests
//
// Stock, refunds and access checks are not handled here; the application
// layer combines the aggregate with product.Product and the access policy.
package order

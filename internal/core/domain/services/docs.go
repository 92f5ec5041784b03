// Package services holds domain logic that spans the Order, Product and
// Request aggregates and therefore belongs to none of them.
//
// The package includes:
//   - StockReconciler: builds restock lines from order items and applies them to products
//   - ReturnPolicy: decides whether products allow cancellation, return or replacement
//
// Services are pure: they mutate the aggregates handed to them and leave
// loading, locking and persistence to the application layer.
package services

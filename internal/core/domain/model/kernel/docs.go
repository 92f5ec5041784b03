// Package kernel provides the value objects shared by every aggregate of the
// fulfillment domain.
//
// The package includes:
//   - UUID: identifier of orders, items, products, users and requests
//   - Money: a non-negative decimal amount captured at order time
//
// Both are immutable and their zero values are invalid, so a value that did not
// go through a constructor is caught by Validate.
package kernel

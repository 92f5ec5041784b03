// Package returns models post-delivery return and replace requests.
//
// A Request targets one order item and moves through its own small state
// machine:
//
//	Pending ──> Approved ──> Processed
//	   │
//	   └──> Rejected
//
// Processed and Rejected are final. A return request captures the item total
// as its refund amount when it is opened; the amount is never recalculated.
package returns

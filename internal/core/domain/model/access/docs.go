// Package access decides who may read or mutate an order.
//
// An Actor is the authenticated caller: a user id and one Role. Roles form a
// partial order (Admin covers Vendor, Vendor covers Customer) and each carries a
// fixed capability set. Authorizers combine capabilities with ownership:
//
//   - order owner: the user that placed the order
//   - order vendor: the vendor of at least one product in the order
//
// Authorizers never load data. Callers pass the facts (owner id, vendor ids of
// the order items) and receive nil, errs.ErrUnauthenticated or an
// *errs.AccessDeniedError.
package access

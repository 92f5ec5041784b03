// Package product holds the slice of the catalogue the order lifecycle needs:
// who sells a product, how much of it is in stock, and whether it may be
// returned or replaced.
//
// Products are read at decision time and never copied into orders, so a change
// to IsReturnable affects every later cancellation or return of that product.
package product

// Package order implements the Order aggregate: an immutable line-item
// snapshot with a frozen total and the fulfillment state machine driving it
// from checkout through delivery, cancellation, or refund.
//
// Orders are created only by a successful checkout, never directly. The total
// is computed once at creation from the cart's price snapshots; later catalog
// price changes have no effect on existing orders.
package order

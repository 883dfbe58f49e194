package order

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder factory method. This ensures all orders are properly validated.
var ErrOrderIsNotConstructed = errs.NewValueIsRequiredError("Order must be created via NewOrder constructor")

// ErrOrderHasNoItems is returned when an order is created without line items.
var ErrOrderHasNoItems = errs.NewValueIsRequiredError("order must contain at least one item")

// Order is the aggregate root for a buyer's purchase. It holds an immutable
// snapshot of line items, the total frozen at creation time, and the
// fulfillment state machine.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and owner
//   - Must contain at least one line item, all in the same currency
//   - Total amount equals the sum of item subtotals and never changes
//   - Status transitions follow the rules encoded in Status
//   - Can only be created through NewOrder (or RestoreOrder from persistence)
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// ownerID identifies the buyer the order belongs to
	ownerID kernel.UUID

	// items is the immutable line-item snapshot taken from the cart
	items []Item

	// totalAmount is the sum of item subtotals, frozen at creation
	totalAmount kernel.Money

	// status represents the current state in the order lifecycle
	status Status

	// createdAt records when checkout created the order
	createdAt time.Time

	// isConstructed ensures the order was created via NewOrder
	isConstructed bool
}

// NewOrder creates an Order in Created status from line-item snapshots.
// The total is computed here, once, as the sum of item subtotals; every item
// must carry the same currency. This is the only path that computes a total;
// nothing later in the lifecycle recomputes or adjusts it.
//
// Example:
//
//	item, _ := order.NewItem(productID, 2, price)
//	o, err := order.NewOrder(kernel.NewUUID(), buyerID, []order.Item{item})
//	if err != nil {
//	    // handle validation error
//	}
func NewOrder(id kernel.UUID, ownerID kernel.UUID, items []Item) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrOrderHasNoItems
	}

	total := items[0].Subtotal()
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	for _, item := range items[1:] {
		sum, err := total.Add(item.Subtotal())
		if err != nil {
			return nil, err
		}
		total = sum
	}

	return &Order{
		id:            id,
		ownerID:       ownerID,
		items:         append([]Item(nil), items...),
		totalAmount:   total,
		status:        Created,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an Order from persistence without re-running
// creation-time rules (the stored total is trusted, not recomputed).
// The status must still be a valid lifecycle state.
func RestoreOrder(
	id kernel.UUID,
	ownerID kernel.UUID,
	items []Item,
	totalAmount kernel.Money,
	status Status,
	createdAt time.Time,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}
	if err := totalAmount.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		id:            id,
		ownerID:       ownerID,
		items:         append([]Item(nil), items...),
		totalAmount:   totalAmount,
		status:        status,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
// Call when reconstructing orders from persistence to ensure data integrity.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OwnerID returns the buyer the order belongs to.
func (o *Order) OwnerID() kernel.UUID {
	return o.ownerID
}

// Items returns a copy of the line-item snapshot.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// TotalAmount returns the total frozen at creation time.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the order creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Place marks checkout as complete: stock for every line is reserved and the
// totals are frozen. Only valid from Created.
func (o *Order) Place() error {
	newStatus, err := o.status.Place()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Pay records a settled payment. Replaying Pay on an already paid order is a
// no-op, never an error, so that settlement callbacks can be delivered more
// than once.
func (o *Order) Pay() error {
	newStatus, err := o.status.Pay()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Confirm records the seller acknowledging a paid order.
func (o *Order) Confirm() error {
	newStatus, err := o.status.Confirm()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Ship records the order leaving the warehouse.
func (o *Order) Ship() error {
	newStatus, err := o.status.Ship()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Deliver records the order reaching the buyer. Terminal.
func (o *Order) Deliver() error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Cancel abandons the order. Disallowed once delivered or already terminal.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Refund marks a paid order as refunded. The caller is responsible for
// verifying the associated payment is settled before invoking this.
func (o *Order) Refund() error {
	newStatus, err := o.status.Refund()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

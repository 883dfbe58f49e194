// Package inventory implements the per-product stock record behind the
// inventory ledger. A record pairs the on-hand quantity with a monotonic
// version used for optimistic concurrency: writers persist a record only if
// the stored version still matches the one they read.
package inventory

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var (
	// ErrRecordIsNotConstructed is returned when a Record was not created
	// through NewRecord or RestoreRecord.
	ErrRecordIsNotConstructed = errs.NewValueIsRequiredError(
		"Record must be created via NewRecord constructor")

	// ErrInsufficientStock rejects a reservation larger than the available
	// quantity. The on-hand count never goes negative.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Record is the stock counter for a single product.
//
// Invariants:
//   - quantity >= 0 after every operation
//   - version only grows, and only via the repository's conditional write
type Record struct {
	productID kernel.UUID
	quantity  int
	version   int64

	isConstructed bool
}

// NewRecord lazily creates a zero-quantity record for a known product.
// Stock tracking starts the first time a product needs it.
func NewRecord(productID kernel.UUID) (*Record, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}

	return &Record{
		productID:     productID,
		quantity:      0,
		isConstructed: true,
	}, nil
}

// RestoreRecord reconstructs a Record from persistence.
func RestoreRecord(productID kernel.UUID, quantity int, version int64) (*Record, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is negative", quantity))
	}

	return &Record{
		productID:     productID,
		quantity:      quantity,
		version:       version,
		isConstructed: true,
	}, nil
}

// Validate ensures the Record was properly constructed.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

// ProductID returns the product this record tracks.
func (r *Record) ProductID() kernel.UUID {
	return r.productID
}

// Quantity returns the currently available stock.
func (r *Record) Quantity() int {
	return r.quantity
}

// Version returns the optimistic-concurrency counter as read from storage.
func (r *Record) Version() int64 {
	return r.version
}

// Reserve decrements available stock for a checkout line.
// Fails with ErrInsufficientStock when fewer than qty units are available;
// the quantity is left untouched on failure.
func (r *Record) Reserve(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", qty))
	}
	if r.quantity < qty {
		return fmt.Errorf("%w: product %s has %d, requested %d",
			ErrInsufficientStock, r.productID, r.quantity, qty)
	}

	r.quantity -= qty
	return nil
}

// Release returns previously reserved stock, used by cancellations and refunds.
func (r *Record) Release(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", qty))
	}

	r.quantity += qty
	return nil
}

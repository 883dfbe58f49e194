package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for payment records.
// Exactly one payment record exists per order; the storage layer enforces
// this with a unique constraint on the order id.
type PaymentRepository interface {
	// Add persists a new payment record.
	// Returns payment.ErrPaymentAlreadyExists when a record for the same
	// order is already stored.
	Add(ctx context.Context, record *payment.Payment) error

	// Update persists changes to an existing payment record.
	Update(ctx context.Context, record *payment.Payment) error

	// Get retrieves a payment record by its unique identifier.
	// Returns errs.ObjectNotFoundError when no such record exists.
	Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error)

	// GetByOrderID retrieves the payment record attached to an order.
	// Returns errs.ObjectNotFoundError when the order has no payment.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error)
}
